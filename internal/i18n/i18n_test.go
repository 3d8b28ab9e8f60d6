package i18n

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTranslatesToPortuguese(t *testing.T) {
	assert.Equal(t, "Usuário ou senha inválidos", T(InvalidCredentialsKey))
	assert.Equal(t, "Olá, Administrador", T(GreetingKey, "Administrador"))
}

func TestFormatDateIn(t *testing.T) {
	ts := time.Date(2024, 3, 7, 9, 5, 59, 0, time.UTC)

	assert.Equal(t, "07/03/2024 09:05", FormatDateIn(ts, time.UTC))
	assert.Equal(t, "07/03/2024 09:05", FormatDateIn(ts, nil))

	plusThree := time.FixedZone("UTC+3", 3*60*60)
	assert.Equal(t, "07/03/2024 12:05", FormatDateIn(ts, plusThree))
}
