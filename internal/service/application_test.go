package service

import (
	"testing"

	"go.uber.org/fx"
)

func TestOptionsGraphIsComplete(t *testing.T) {
	if err := fx.ValidateApp(Options()); err != nil {
		t.Fatalf("dependency graph is invalid: %v", err)
	}
}
