package site

import (
	"context"

	"github.com/goliatone/go-sitecms/internal/colors"
	"github.com/goliatone/go-sitecms/internal/docstore"
	"github.com/goliatone/go-sitecms/internal/revalidate"
	"github.com/goliatone/go-sitecms/internal/settings"
)

func newThemeModule(store docstore.Store, eng []settings.Option) *settings.Single[ThemeSettings] {
	clock := settings.Clock(eng)
	return settings.NewSingle(store, settings.SingleConfig[ThemeSettings]{
		ContentType: revalidate.Theme,
		Collection:  CollectionWebSettings,
		ID:          themeDocumentID,
		Defaults:    defaultTheme,
		Normalize: func(t *ThemeSettings) {
			t.ThemeColors = t.ThemeColors.Complete()
		},
		Prepare: func(_ context.Context, _ ThemeSettings, next ThemeSettings) (ThemeSettings, error) {
			light, err := next.ThemeColors.Light.Normalize()
			if err != nil {
				return next, err
			}
			dark, err := next.ThemeColors.Dark.Normalize()
			if err != nil {
				return next, err
			}
			now := clock()
			next.ThemeColors = colors.Modes{Light: light, Dark: dark}
			next.UpdatedAt = &now
			return next, nil
		},
	}, eng...)
}

// Palette is the current palette accessor read by every page template. It
// never fails: missing roles and store errors fall back to the defaults.
func (s *Site) Palette(ctx context.Context) colors.Modes {
	return s.Theme.GetOrDefault(ctx).ThemeColors.Complete()
}

// StyleSheet renders the palette as CSS custom properties.
func (s *Site) StyleSheet(ctx context.Context) string {
	return colors.StyleSheet(s.Palette(ctx))
}
