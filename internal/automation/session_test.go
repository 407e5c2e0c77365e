// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package automation

import (
	"bytes"
	"errors"
	"testing"
)

type sessionApp struct {
	quitCalls int
	quitErr   error
}

func (a *sessionApp) Open(string, OpenOptions) (Presentation, error) { return nil, nil }
func (a *sessionApp) Pump()                                          {}
func (a *sessionApp) Quit() error {
	a.quitCalls++
	return a.quitErr
}

func TestWithApplication_QuitsAfterSuccess(t *testing.T) {
	app := &sessionApp{}
	var warnings bytes.Buffer

	err := WithApplication(func() (Application, error) { return app, nil }, &warnings, func(Application) error {
		return nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if app.quitCalls != 1 {
		t.Errorf("quit calls = %d, want 1", app.quitCalls)
	}
}

func TestWithApplication_QuitsAfterFailure(t *testing.T) {
	app := &sessionApp{}
	batchErr := errors.New("render failed")

	err := WithApplication(func() (Application, error) { return app, nil }, nil, func(Application) error {
		return batchErr
	})
	if !errors.Is(err, batchErr) {
		t.Fatalf("got %v, want the batch error", err)
	}
	if app.quitCalls != 1 {
		t.Errorf("quit calls = %d, want 1", app.quitCalls)
	}
}

func TestWithApplication_ToleratesQuitFailure(t *testing.T) {
	app := &sessionApp{quitErr: errors.New("instance already gone")}
	var warnings bytes.Buffer

	err := WithApplication(func() (Application, error) { return app, nil }, &warnings, func(Application) error {
		return nil
	})
	if err != nil {
		t.Fatalf("quit failure must not become a batch failure: %v", err)
	}
	if warnings.Len() == 0 {
		t.Error("quit failure should be reported as a warning")
	}
}

func TestWithApplication_ConnectFailure(t *testing.T) {
	connectErr := errors.New("COM class not registered")

	err := WithApplication(func() (Application, error) { return nil, connectErr }, nil, func(Application) error {
		t.Fatal("fn must not run when connect fails")
		return nil
	})
	if !errors.Is(err, connectErr) {
		t.Fatalf("got %v, want the connect error", err)
	}
}
