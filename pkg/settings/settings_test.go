package settings

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	d := Defaults()
	assert.Equal(t, "light", d.Theme)
	assert.Equal(t, 100, d.TextSize)
	assert.False(t, d.AutoClean)
	assert.Equal(t, "raw", d.ViewMode)
	assert.Equal(t, "tldr", d.SummaryMode)
	assert.Equal(t, "", d.TTSVoice)
	assert.Equal(t, 1.0, d.TTSSpeed)
	assert.NoError(t, d.Validate())
}

func TestSettings_Set(t *testing.T) {
	tests := []struct {
		key, value string
		wantErr    error
		check      func(t *testing.T, s Settings)
	}{
		{KeyTheme, "dark", nil, func(t *testing.T, s Settings) { assert.Equal(t, "dark", s.Theme) }},
		{KeyTheme, "sepia", ErrInvalid, nil},
		{KeyTextSize, "120%", nil, func(t *testing.T, s Settings) { assert.Equal(t, 120, s.TextSize) }},
		{KeyTextSize, "big", ErrInvalid, nil},
		{KeyTextSize, "10", ErrInvalid, nil},
		{KeyAutoClean, "true", nil, func(t *testing.T, s Settings) { assert.True(t, s.AutoClean) }},
		{KeyViewMode, "summary", nil, func(t *testing.T, s Settings) { assert.Equal(t, "summary", s.ViewMode) }},
		{KeySummaryMode, "bullets", nil, func(t *testing.T, s Settings) { assert.Equal(t, "bullets", s.SummaryMode) }},
		{KeySummaryMode, "poem", ErrInvalid, nil},
		{KeyTTSVoice, "Samantha", nil, func(t *testing.T, s Settings) { assert.Equal(t, "Samantha", s.TTSVoice) }},
		{KeyTTSSpeed, "1.5", nil, func(t *testing.T, s Settings) { assert.Equal(t, 1.5, s.TTSSpeed) }},
		{KeyTTSSpeed, "9", ErrInvalid, nil},
		{"fontFamily", "serif", ErrUnknownKey, nil},
	}

	for _, tt := range tests {
		t.Run(tt.key+"="+tt.value, func(t *testing.T) {
			s := Defaults()
			err := s.Set(tt.key, tt.value)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.Equal(t, Defaults(), s, "settings must be unchanged on error")
				return
			}
			require.NoError(t, err)
			tt.check(t, s)
		})
	}
}

func TestSettings_ValidateMessageNamesKey(t *testing.T) {
	s := Defaults()
	s.TextSize = 400
	err := s.Validate()
	require.ErrorIs(t, err, ErrInvalid)
	assert.Contains(t, err.Error(), "textSize=400")
}

func TestMapRoundTripAndUnknownKeys(t *testing.T) {
	s := Defaults()
	require.NoError(t, s.Set(KeyTheme, "dark"))
	require.NoError(t, s.Set(KeyTTSSpeed, "0.75"))

	m := s.Map()
	m["legacyOption"] = "whatever"

	got, err := FromMap(m)
	require.NoError(t, err)
	assert.Equal(t, s, got)

	partial, err := FromMap(map[string]string{KeyAutoClean: "true"})
	require.NoError(t, err)
	assert.True(t, partial.AutoClean)
	assert.Equal(t, "light", partial.Theme)
}

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	got, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, Defaults(), got)

	updated, err := Update(ctx, store, func(s *Settings) error { return s.Set(KeyTheme, "dark") })
	require.NoError(t, err)
	assert.Equal(t, "dark", updated.Theme)

	got, _ = store.Load(ctx)
	assert.Equal(t, "dark", got.Theme)

	bad := Defaults()
	bad.ViewMode = "fullscreen"
	require.ErrorIs(t, store.Save(ctx, bad), ErrInvalid)

	require.NoError(t, store.Reset(ctx))
	got, _ = store.Load(ctx)
	assert.Equal(t, Defaults(), got)
}

func TestFileStore(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "settings.yaml")
	store := NewFileStore(path)

	t.Run("missing file yields defaults", func(t *testing.T) {
		got, err := store.Load(ctx)
		require.NoError(t, err)
		assert.Equal(t, Defaults(), got)
	})

	t.Run("save then load", func(t *testing.T) {
		s := Defaults()
		require.NoError(t, s.Set(KeyTextSize, "130"))
		require.NoError(t, s.Set(KeySummaryMode, "key"))
		require.NoError(t, store.Save(ctx, s))

		got, err := store.Load(ctx)
		require.NoError(t, err)
		assert.Equal(t, s, got)

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Contains(t, string(data), "textSize: 130")
	})

	t.Run("unknown keys ignored and missing keys defaulted", func(t *testing.T) {
		require.NoError(t, os.WriteFile(path, []byte("theme: dark\nfontFamily: serif\n"), 0o644))

		got, err := store.Load(ctx)
		require.NoError(t, err)
		assert.Equal(t, "dark", got.Theme)
		assert.Equal(t, 100, got.TextSize)
	})

	t.Run("invalid values rejected", func(t *testing.T) {
		require.NoError(t, os.WriteFile(path, []byte("theme: neon\n"), 0o644))

		_, err := store.Load(ctx)
		require.ErrorIs(t, err, ErrInvalid)
	})

	t.Run("reset removes file", func(t *testing.T) {
		require.NoError(t, store.Reset(ctx))
		_, err := os.Stat(path)
		assert.True(t, os.IsNotExist(err))
		require.NoError(t, store.Reset(ctx), "reset of missing file is fine")
	})
}

func TestRedisStore(t *testing.T) {
	url := os.Getenv("CLEANREAD_TEST_REDIS_URL")
	if url == "" {
		t.Skip("CLEANREAD_TEST_REDIS_URL not set")
	}

	ctx := context.Background()
	store, err := NewRedisStoreFromURL(url, "cleanread:test:"+t.Name())
	require.NoError(t, err)
	defer func() { _ = store.Close() }()
	defer func() { _ = store.Reset(ctx) }()

	got, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, Defaults(), got)

	s := Defaults()
	require.NoError(t, s.Set(KeyTheme, "dark"))
	require.NoError(t, store.Save(ctx, s))

	got, err = store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, s, got)
}

func TestNewRedisStoreFromURL_Invalid(t *testing.T) {
	_, err := NewRedisStoreFromURL("http://not-redis", "")
	assert.Error(t, err)
}
