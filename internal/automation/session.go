// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package automation

import (
	"fmt"
	"io"
)

// WithApplication connects an application instance, runs fn against it,
// and always quits the instance afterwards, even when fn fails or
// panics. A Quit failure is reported to warnings but never
// replaces fn's error: the batch outcome belongs to the pipeline, not to
// shutdown.
func WithApplication(connect func() (Application, error), warnings io.Writer, fn func(Application) error) error {
	if warnings == nil {
		warnings = io.Discard
	}

	app, err := connect()
	if err != nil {
		return fmt.Errorf("connecting to presentation application: %w", err)
	}

	defer func() {
		if qerr := app.Quit(); qerr != nil {
			fmt.Fprintf(warnings, "warning: could not quit application: %v\n", qerr)
		}
	}()

	return fn(app)
}
