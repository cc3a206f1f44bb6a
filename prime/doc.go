// Package prime provides a client for the Adobe Captivate Prime v2 REST API.
//
// The client reads its tokens from a credentials.Store and keeps them fresh
// through a TokenManager. Every request carries the access token current at
// the time it is sent, so a refresh in the middle of a paginated query takes
// effect on the next page.
//
// # Usage
//
//	store, err := credentials.Open(afero.NewOsFs(), "credentials.toml", credentials.CredentialRecord{}, logger)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	client, err := prime.NewClient(store, logger, prime.WithTimeout(30*time.Second))
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	res, err := client.ListBadges(ctx, prime.ListOptions{Limit: 50})
//	if err != nil {
//		log.Fatal(err)
//	}
//	if res.Partial() {
//		log.Printf("stopped early: %v", res.Stop)
//	}
//
// # Pagination
//
// Fetch follows links.next until the last page and returns every record in
// one Result. A 400, an unexpected status, or a 401 the token check cannot
// recover from ends the loop early. The records gathered so far are kept and
// Result.Stop says why.
//
// # Error Handling
//
// Failures that leave no usable result are returned as errors:
//
//   - ErrNotImplemented: POST, PATCH and DELETE accessors
//   - ErrUnsupportedMethod: any other non-GET method
//   - FetchError: transport, URL or decoding failures
//   - AuthorizationError: the auth service rejected a refresh
//   - APIError: unexpected status from the auth service
//
// Query parameters restricted to an allow-list never fail. Values outside
// the list are replaced by the parameter's default and logged at debug level.
package prime
