package conf

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func defaultSettings() *Settings {
	s := &Settings{}
	s.Tagger = TaggerSettings{
		TopK:       5,
		MaxWorkers: 5,
		Extensions: []string{".jpg", ".jpeg", ".png", ".webp"},
	}
	s.Scorer = ScorerSettings{
		URL:     "http://localhost:8000/score",
		Timeout: 30 * time.Second,
		Retries: 1,
	}
	s.Output.SQLite.Enabled = true
	s.Output.SQLite.Path = "phototag.db"
	return s
}

func TestValidateSettings(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		mutate      func(*Settings)
		wantErr     bool
		errContains string
	}{
		{
			name:    "defaults are valid",
			mutate:  func(s *Settings) {},
			wantErr: false,
		},
		{
			name:        "zero topk",
			mutate:      func(s *Settings) { s.Tagger.TopK = 0 },
			wantErr:     true,
			errContains: "topk",
		},
		{
			name:        "zero workers",
			mutate:      func(s *Settings) { s.Tagger.MaxWorkers = 0 },
			wantErr:     true,
			errContains: "maxworkers",
		},
		{
			name:        "empty extensions",
			mutate:      func(s *Settings) { s.Tagger.Extensions = nil },
			wantErr:     true,
			errContains: "extensions",
		},
		{
			name:        "extension without dot",
			mutate:      func(s *Settings) { s.Tagger.Extensions = []string{"jpg"} },
			wantErr:     true,
			errContains: "dot",
		},
		{
			name:        "missing scorer url",
			mutate:      func(s *Settings) { s.Scorer.URL = "" },
			wantErr:     true,
			errContains: "scorer.url",
		},
		{
			name:        "negative retries",
			mutate:      func(s *Settings) { s.Scorer.Retries = -1 },
			wantErr:     true,
			errContains: "retries",
		},
		{
			name: "no database enabled",
			mutate: func(s *Settings) {
				s.Output.SQLite.Enabled = false
				s.Output.MySQL.Enabled = false
			},
			wantErr:     true,
			errContains: "database",
		},
		{
			name: "sqlite enabled without path",
			mutate: func(s *Settings) {
				s.Output.SQLite.Path = ""
			},
			wantErr:     true,
			errContains: "sqlite.path",
		},
		{
			name: "mysql only is valid",
			mutate: func(s *Settings) {
				s.Output.SQLite.Enabled = false
				s.Output.MySQL.Enabled = true
			},
			wantErr: false,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			s := defaultSettings()
			tt.mutate(s)
			err := ValidateSettings(s)
			if tt.wantErr {
				assert.ErrorContains(t, err, tt.errContains)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
