package credentials

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"
)

// Store owns the credential and session records and their file.
// A Store is not safe for concurrent use.
type Store struct {
	fs      afero.Fs
	path    string
	logger  zerolog.Logger
	creds   CredentialRecord
	session SessionRecord
}

// NewStore creates an empty store backed by path on fs. Nothing is read
// until Load is called.
func NewStore(fs afero.Fs, path string, logger zerolog.Logger) *Store {
	return &Store{
		fs:     fs,
		path:   path,
		logger: logger,
	}
}

// Open loads the file at path, merges every non-empty override on top of
// it and writes the result back. Token overrides only seed a file that
// holds no token yet.
func Open(fs afero.Fs, path string, overrides CredentialRecord, logger zerolog.Logger) (*Store, error) {
	s := NewStore(fs, path, logger)

	if err := s.Load(); err != nil {
		return nil, err
	}

	s.merge(overrides)

	if err := s.Persist(); err != nil {
		return nil, err
	}

	return s, nil
}

// Path returns the file location
func (s *Store) Path() string {
	return s.path
}

// Load reads the file into memory. A missing file is created with empty
// sections.
func (s *Store) Load() error {
	exists, err := afero.Exists(s.fs, s.path)
	if err != nil {
		return s.fail("stat", err)
	}

	if !exists {
		s.logger.Error().Str("path", s.path).Msg("Credentials file not found, creating an empty one")
		s.creds = CredentialRecord{}
		s.session = SessionRecord{}
		return s.Persist()
	}

	f, err := s.fs.Open(s.path)
	if err != nil {
		return s.fail("open", err)
	}
	defer f.Close()

	var record fileRecord
	if err := toml.NewDecoder(f).Decode(&record); err != nil {
		return s.fail("decode", err)
	}

	creds, session, err := fromFile(record)
	if err != nil {
		return s.fail("decode", err)
	}

	s.creds = creds
	s.session = session

	s.logger.Debug().Str("path", s.path).Msg("Loaded credentials file")
	return nil
}

// merge applies non-empty override values and fills in defaults. Token
// overrides are ignored once the file holds a token.
func (s *Store) merge(o CredentialRecord) {
	set := func(key, value string, dst *string) {
		if value == "" {
			return
		}
		*dst = value
		s.logger.Debug().Str("key", key).Msg("Credentials updated from override")
	}

	set("server_instance", o.ServerInstance, &s.creds.ServerInstance)
	set("application_id", o.ApplicationID, &s.creds.ApplicationID)
	set("application_secret", o.ApplicationSecret, &s.creds.ApplicationSecret)
	set("application_url", o.ApplicationURL, &s.creds.ApplicationURL)
	set("application_scopes", o.ApplicationScopes, &s.creds.ApplicationScopes)

	// Tokens rotate on every refresh, so overrides only seed an empty file
	if s.creds.AccessToken == "" && s.creds.RefreshToken == "" {
		set("access_token", o.AccessToken, &s.creds.AccessToken)
		set("refresh_token", o.RefreshToken, &s.creds.RefreshToken)
	} else if o.AccessToken != "" || o.RefreshToken != "" {
		s.logger.Debug().Msg("Keeping stored tokens, token overrides only apply to an empty credentials file")
	}

	if s.creds.ServerInstance == "" {
		s.creds.ServerInstance = DefaultServerInstance
		s.logger.Debug().Str("server_instance", DefaultServerInstance).Msg("Using default server instance")
	}
}

// Set updates a single value by its file section and key
func (s *Store) Set(section, key, value string) error {
	record := toFile(s.creds, s.session)

	field, ok := record.field(section, key)
	if !ok {
		return fmt.Errorf("%w: %s.%s", ErrUnknownKey, section, key)
	}
	*field = value

	creds, session, err := fromFile(record)
	if err != nil {
		return fmt.Errorf("invalid value for %s.%s: %w", section, key, err)
	}

	s.creds = creds
	s.session = session
	return nil
}

// Get returns the text value stored under section/key
func (s *Store) Get(section, key string) (string, error) {
	record := toFile(s.creds, s.session)

	field, ok := record.field(section, key)
	if !ok {
		return "", fmt.Errorf("%w: %s.%s", ErrUnknownKey, section, key)
	}
	return *field, nil
}

// Credentials returns a copy of the credential record
func (s *Store) Credentials() CredentialRecord {
	return s.creds
}

// Session returns a copy of the session record
func (s *Store) Session() SessionRecord {
	return s.session
}

// UpdateCredentials mutates the in-memory credential record
func (s *Store) UpdateCredentials(fn func(*CredentialRecord)) {
	fn(&s.creds)
}

// UpdateSession mutates the in-memory session record
func (s *Store) UpdateSession(fn func(*SessionRecord)) {
	fn(&s.session)
}

// Persist rewrites the whole file from the in-memory state
func (s *Store) Persist() (err error) {
	if dir := filepath.Dir(s.path); dir != "." && dir != "" {
		if err := s.fs.MkdirAll(dir, 0o700); err != nil {
			return s.fail("mkdir", err)
		}
	}

	f, err := s.fs.OpenFile(s.path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o600)
	if err != nil {
		return s.fail("open", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = s.fail("close", cerr)
		}
	}()

	if err := toml.NewEncoder(f).Encode(toFile(s.creds, s.session)); err != nil {
		return s.fail("write", err)
	}

	return nil
}

func (s *Store) fail(op string, err error) error {
	s.logger.Error().Err(err).Str("path", s.path).Str("op", op).Msg("Credentials file could not be saved or read")
	return &ConfigError{Path: s.path, Op: op, Err: err}
}
