package table

import (
	"html"

	"gamedata-wiki/core/utils"

	"golang.org/x/text/number"
)

// Format renders a resolved value per display type. The empty string (and
// nil) always formats to an empty cell.
func Format(value any, typ DisplayType, loc Localizer) Cell {
	if value == nil {
		return Cell{}
	}
	if s, ok := value.(string); ok && s == "" {
		return Cell{}
	}

	switch typ {
	case TypeImage:
		src := html.EscapeString(utils.ToString(value))
		return Cell{
			Text: `<img src="` + src + `" alt="Icon" style="width: 32px; height: 32px;">`,
			Raw:  true,
		}
	case TypeBoolean:
		if utils.Truthy(value) {
			return Cell{Text: loc.Translate("yes")}
		}
		return Cell{Text: loc.Translate("no")}
	case TypeNumber:
		if f, ok := utils.ToFloat(value); ok {
			return Cell{Text: loc.Printer().Sprint(number.Decimal(f))}
		}
		return Cell{Text: utils.ToString(value)}
	default:
		return Cell{Text: utils.ToString(value)}
	}
}
