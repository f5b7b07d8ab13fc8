package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Sin swagger.json el middleware de docs no debe montarse: montarlo con un
// archivo inexistente tumba el servidor al arrancar.
func TestSwaggerFile_SinArchivoNoSeMonta(t *testing.T) {
	_, ok := swaggerFile(filepath.Join(t.TempDir(), "swagger.json"))
	assert.False(t, ok, "sin el archivo generado no debe habilitarse el middleware")
}

func TestSwaggerFile_ConArchivoSeMonta(t *testing.T) {
	path := filepath.Join(t.TempDir(), "swagger.json")
	require.NoError(t, os.WriteFile(path, []byte("{}"), 0o644))

	got, ok := swaggerFile(path)
	assert.True(t, ok)
	assert.Equal(t, path, got)
}
