package utils_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/hanwool95/game-socket-server/internal/presentation/utils"
)

func TestOriginAllowed(t *testing.T) {
	allowed := []string{"http://localhost:3000", "https://www.ceasar.kr/"}

	assert.True(t, utils.OriginAllowed(allowed, ""))
	assert.True(t, utils.OriginAllowed(allowed, "http://localhost:3000"))
	assert.True(t, utils.OriginAllowed(allowed, "https://WWW.ceasar.kr"))
	assert.False(t, utils.OriginAllowed(allowed, "https://evil.example"))
	assert.False(t, utils.OriginAllowed(nil, "http://localhost:3000"))
	assert.True(t, utils.OriginAllowed([]string{"*"}, "https://anything.example"))
}
