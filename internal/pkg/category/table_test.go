package category

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qs3c/travelmart_server/config"
)

func strPtr(s string) *string { return &s }

func TestDefaultTable_Size(t *testing.T) {
	table := DefaultTable()
	entries := table.Entries()

	assert.Len(t, entries, 50)

	seen := make(map[string]bool)
	for _, e := range entries {
		assert.False(t, seen[e.Key], "duplicate key %s", e.Key)
		seen[e.Key] = true
		assert.NotEmpty(t, e.DisplayName)
		assert.NotEmpty(t, e.Noun)
	}
}

func TestResolve_TravelBuddy(t *testing.T) {
	table := DefaultTable()

	path, err := table.Resolve(TravelBuddys, KindManage, strPtr("X"))
	require.NoError(t, err)
	assert.Equal(t, "/manage-travel-buddy/X", path)

	path, err = table.Resolve(TravelBuddys, KindView, strPtr("X"))
	require.NoError(t, err)
	assert.Equal(t, "/travel-buddy/X", path)

	path, err = table.Resolve(TravelBuddys, KindPublish, nil)
	require.NoError(t, err)
	assert.Equal(t, "/publish-travel-buddy", path)
}

func TestResolve_TargetNotFound(t *testing.T) {
	table := DefaultTable()

	for _, kind := range []Kind{KindManage, KindView} {
		_, err := table.Resolve(TravelBuddys, kind, nil)
		require.Error(t, err)

		var notFound *TargetNotFoundError
		require.True(t, errors.As(err, &notFound))
		assert.Equal(t, "Travel Buddy profile not found", err.Error())

		_, err = table.Resolve(TravelBuddys, kind, strPtr(""))
		assert.True(t, errors.As(err, &notFound))
	}
}

func TestResolve_Unsupported(t *testing.T) {
	table := DefaultTable()

	t.Run("category without routes", func(t *testing.T) {
		_, err := table.Resolve(VisaServices, KindPublish, nil)
		assert.ErrorIs(t, err, ErrUnsupportedCategory)

		// 未接入优先于实体缺失
		_, err = table.Resolve(VisaServices, KindManage, nil)
		assert.ErrorIs(t, err, ErrUnsupportedCategory)
	})

	t.Run("unknown category", func(t *testing.T) {
		_, err := table.Resolve("moon_landings", KindView, strPtr("1"))
		assert.ErrorIs(t, err, ErrUnsupportedCategory)
	})

	t.Run("unknown kind", func(t *testing.T) {
		_, err := table.Resolve(TravelBuddys, Kind("delete"), strPtr("1"))
		assert.ErrorIs(t, err, ErrUnsupportedCategory)
	})
}

func TestResolve_Totality(t *testing.T) {
	table := DefaultTable()
	id := strPtr("abc123")

	for _, e := range table.Entries() {
		for _, kind := range []Kind{KindPublish, KindManage, KindView} {
			path, err := table.Resolve(e.Key, kind, id)
			if err != nil {
				assert.ErrorIs(t, err, ErrUnsupportedCategory, "%s/%s", e.Key, kind)
				assert.False(t, e.Supported())
				continue
			}
			assert.True(t, strings.HasPrefix(path, "/"), "%s/%s", e.Key, kind)
			assert.NotContains(t, path, ":id")
		}
	}
}

func TestResolve_EscapesID(t *testing.T) {
	table := DefaultTable()

	path, err := table.Resolve(TourGuiders, KindView, strPtr("a/b"))
	require.NoError(t, err)
	assert.Equal(t, "/tour-guide/a%2Fb", path)
}

func TestFromConfig(t *testing.T) {
	table := FromConfig([]config.CategoryConfig{
		{Key: VisaServices, PublishPath: "/publish-visa-service", ManagePath: "/manage-visa-service/:id", ViewPath: "/visa-service/:id"},
		{Key: "glamping", DisplayName: "Glamping", PublishPath: "/publish-glamping", ManagePath: "/manage-glamping/:id", ViewPath: "/glamping/:id"},
		{Key: ""},
	})

	assert.Len(t, table.Entries(), 51)

	path, err := table.Resolve(VisaServices, KindView, strPtr("9"))
	require.NoError(t, err)
	assert.Equal(t, "/visa-service/9", path)
	assert.Equal(t, "Visa Service", table.DisplayName(VisaServices))

	_, err = table.Resolve("glamping", KindManage, nil)
	assert.EqualError(t, err, "Glamping listing not found")

	// 内置表不受影响
	_, err = DefaultTable().Resolve(VisaServices, KindView, strPtr("9"))
	assert.ErrorIs(t, err, ErrUnsupportedCategory)
}

func TestDisplayName_Unknown(t *testing.T) {
	table := DefaultTable()
	assert.Equal(t, "Hotel & Accommodation", table.DisplayName(HotelsAccommodations))
	assert.Equal(t, "unknown_thing", table.DisplayName("unknown_thing"))
	assert.False(t, table.Contains("unknown_thing"))
}
