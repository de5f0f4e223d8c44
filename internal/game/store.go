package game

import (
	"fmt"

	"github.com/Miyukiichan/lofi-buddy/config"
)

// configStore holds the live config and writes edits back to its file.
type configStore struct {
	path string
	cfg  *config.Config
}

func (s *configStore) Current() *config.Config { return s.cfg }

// Update saves cfg and makes it live. The live config is left alone when
// saving fails.
func (s *configStore) Update(cfg *config.Config) error {
	if s.path != "" {
		if err := config.Save(cfg, s.path); err != nil {
			return fmt.Errorf("save config: %w", err)
		}
	}
	s.cfg = cfg
	return nil
}

// replace swaps in a config reloaded from disk.
func (s *configStore) replace(cfg *config.Config) {
	s.cfg = cfg
}
