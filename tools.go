//go:build tools

package main

// Herramientas de desarrollo fijadas en go.mod (no se compilan con la app).
import (
	_ "github.com/swaggo/swag/cmd/swag"
)
