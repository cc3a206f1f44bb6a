package filter

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/s0up4200/primectl/prime"
)

// generateTestResources creates learning objects, every other one published
func generateTestResources(count int) []prime.Resource {
	records := make([]prime.Resource, count)

	for i := 0; i < count; i++ {
		state := "Published"
		if i%2 == 1 {
			state = "Retired"
		}

		records[i] = prime.Resource{
			"id":   fmt.Sprintf("course:%d", i),
			"type": "learningObject",
			"attributes": map[string]any{
				"loType":      []string{"course", "learningProgram", "certification"}[i%3],
				"state":       state,
				"duration":    float64(600 * (i % 10)),
				"dateCreated": time.Now().AddDate(0, -i%12, 0).UTC().Format(time.RFC3339),
				"rating":      map[string]any{"averageRating": float64(i % 5)},
			},
		}
	}

	return records
}

func BenchmarkCompileFilter(b *testing.B) {
	expressions := []struct {
		name string
		expr string
	}{
		{"simple", `state == "Published"`},
		{"complex", `state == "Published" and num("rating.averageRating") > 3 and date("dateCreated") > monthsAgo(6)`},
	}

	for _, tc := range expressions {
		b.Run(tc.name, func(b *testing.B) {
			compiler := NewExprCompiler()
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				if _, err := compiler.Compile(tc.expr); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

func BenchmarkSelect(b *testing.B) {
	records := generateTestResources(1000)

	filter, err := CompileFilter(`state == "Published" and num("duration") > 1200`)
	if err != nil {
		b.Fatal(err)
	}

	ctx := context.Background()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := Select(ctx, filter, records); err != nil {
			b.Fatal(err)
		}
	}
}
