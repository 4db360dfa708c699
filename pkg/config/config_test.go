package config

import (
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
)

func TestGetIntIgnoraValoresNoNumericos(t *testing.T) {
	v := viper.New()

	// puerto mal formado: cae al default en vez de quedar en 0
	v.Set("HTTP_PORT", "ochenta")
	assert.Equal(t, 8080, getInt(v, "HTTP_PORT", 8080))

	v.Set("DB_PORT", " 5433 ")
	assert.Equal(t, 5433, getInt(v, "DB_PORT", 5432))

	v.Set("JWT_EXPIRATION_MINUTES", 90)
	assert.Equal(t, 90, getInt(v, "JWT_EXPIRATION_MINUTES", 60))

	assert.Equal(t, 60, getInt(v, "NO_DEFINIDA", 60))
}
