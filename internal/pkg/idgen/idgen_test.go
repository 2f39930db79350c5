package idgen_test

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/realm-api/internal/pkg/idgen"
)

func TestPrefixedGenerator(t *testing.T) {
	at := time.Unix(1700000000, 42)
	gen := idgen.NewPrefixed(idgen.PrefixListing).WithClock(func() time.Time { return at })

	a, b := gen.Generate(), gen.Generate()
	assert.NotEqual(t, a, b)
	assert.True(t, strings.HasPrefix(a, "lst_1700000000000000042_"))
	assert.True(t, idgen.HasPrefix(a, idgen.PrefixListing))
	assert.Len(t, strings.Split(a, "_")[2], 8)
}

func TestSequentialGenerator(t *testing.T) {
	gen := idgen.NewSequential(idgen.PrefixCharacter)
	assert.Equal(t, "chr_1", gen.Generate())
	assert.Equal(t, "chr_2", gen.Generate())

	bare := idgen.NewSequential("")
	assert.Equal(t, "1", bare.Generate())
}

func TestUUIDGenerator(t *testing.T) {
	id := idgen.NewUUID(idgen.PrefixGuild).Generate()
	require.True(t, idgen.HasPrefix(id, idgen.PrefixGuild))

	_, err := uuid.Parse(strings.TrimPrefix(id, "gld_"))
	assert.NoError(t, err)

	_, err = uuid.Parse(idgen.NewUUID("").Generate())
	assert.NoError(t, err)
}

func TestHasPrefix(t *testing.T) {
	assert.False(t, idgen.HasPrefix("chr_", idgen.PrefixCharacter))
	assert.False(t, idgen.HasPrefix("gld_1", idgen.PrefixCharacter))
	assert.True(t, idgen.HasPrefix("chr_1", idgen.PrefixCharacter))
}
