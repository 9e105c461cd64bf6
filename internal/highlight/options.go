package highlight

import (
	"github.com/phyten/taglight/internal/decoration"
	"github.com/phyten/taglight/internal/plan"
	"github.com/phyten/taglight/internal/textstyle"
)

// glassOptions keeps only the panel of the glass channel.
func glassOptions(p *plan.TagPlan) decoration.Options {
	glass := p.Channels.Glass
	return decoration.Options{
		IsWholeLine:  glass.Range.IsWholeLine(),
		BorderRadius: glass.BorderRadius,
		Light:        panel(glass.Style.Light),
		Dark:         panel(glass.Style.Dark),
	}
}

func panel(t textstyle.Theme) textstyle.Theme {
	return textstyle.Theme{BackgroundColor: t.BackgroundColor, Border: t.Border}
}

func metaOptions(p *plan.TagPlan) decoration.Options {
	opts := decoration.Options{GutterIconPath: p.Meta.GutterIconPath}
	if p.Meta.Lane != 0 {
		opts.OverviewRulerLane = p.Meta.Lane
		opts.OverviewRulerColor = p.Meta.RulerColour
	}
	return opts
}

func textOptions(style textstyle.Pair) decoration.Options {
	return decoration.Options{Light: style.Light, Dark: style.Dark}
}

// SubTagStyle composes the text channels of a sub-tag's plan and adds the
// background of its glass channel.
func SubTagStyle(p *plan.TagPlan) textstyle.Pair {
	style := textstyle.Compose(p.TextStyles())
	if glass := p.Channels.Glass; glass.Enabled {
		style = style.Override(textstyle.Pair{
			Light: textstyle.Theme{BackgroundColor: glass.Style.Light.BackgroundColor},
			Dark:  textstyle.Theme{BackgroundColor: glass.Style.Dark.BackgroundColor},
		})
	}
	return style
}
