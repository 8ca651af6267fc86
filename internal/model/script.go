package model

import (
	"fmt"
	"time"
)

// ActionScript is an ordered list of actions to execute on a sandbox.
type ActionScript struct {
	// SandboxID is the default target sandbox of the script.
	SandboxID         string
	IncludeScreenShot *bool
	Actions           []Action
}

// Validate checks the script can be executed.
func (s ActionScript) Validate() error {
	if len(s.Actions) == 0 {
		return fmt.Errorf("at least one action is required: %w", ErrNotValid)
	}
	for i, a := range s.Actions {
		if err := ValidateAction(a); err != nil {
			return fmt.Errorf("action %d: %w", i, err)
		}
	}
	return nil
}

// Profile is the stored CLI connection profile.
type Profile struct {
	OrgID       string
	APIKey      string
	Endpoint    string
	Timeout     time.Duration
	Headers     map[string]string
	JournalPath string
}
