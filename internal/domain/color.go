package domain

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	hexColor  = regexp.MustCompile(`^#([0-9a-f]{3}|[0-9a-f]{4}|[0-9a-f]{6}|[0-9a-f]{8})$`)
	cssNumber = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)$`)
)

// IsValidColor reports whether s is a color a browser would accept for a
// piece: a hex code, a CSS named color, rgb()/rgba() or hsl()/hsla() with
// every component in range.
func IsValidColor(s string) bool {
	c := strings.ToLower(strings.TrimSpace(s))
	if c == "" {
		return false
	}

	if strings.HasPrefix(c, "#") {
		return hexColor.MatchString(c)
	}
	if _, ok := namedColors[c]; ok {
		return true
	}

	name, args, ok := splitFunction(c)
	if !ok {
		return false
	}
	switch name {
	case "rgb", "rgba":
		return validRGB(args)
	case "hsl", "hsla":
		return validHSL(args)
	}
	return false
}

// splitFunction turns "rgb(1, 2, 3)" into "rgb" and its argument list.
func splitFunction(c string) (string, []string, bool) {
	open := strings.IndexByte(c, '(')
	if open <= 0 || !strings.HasSuffix(c, ")") {
		return "", nil, false
	}
	name := strings.TrimSpace(c[:open])
	body := strings.TrimSpace(c[open+1 : len(c)-1])
	if body == "" {
		return "", nil, false
	}

	var args []string
	if strings.Contains(body, ",") {
		if strings.Contains(body, "/") {
			return "", nil, false
		}
		for _, part := range strings.Split(body, ",") {
			args = append(args, strings.TrimSpace(part))
		}
	} else {
		// space separated form, alpha after a slash: rgb(1 2 3 / .5)
		main, alpha, hasAlpha := strings.Cut(body, "/")
		args = strings.Fields(main)
		if hasAlpha {
			if len(args) != 3 {
				return "", nil, false
			}
			args = append(args, strings.TrimSpace(alpha))
		}
	}
	return name, args, true
}

func validRGB(args []string) bool {
	if len(args) != 3 && len(args) != 4 {
		return false
	}
	for _, channel := range args[:3] {
		if pct, ok := parsePercent(channel); ok {
			if pct < 0 || pct > 100 {
				return false
			}
			continue
		}
		v, ok := parseNumber(channel)
		if !ok || v < 0 || v > 255 {
			return false
		}
	}
	return len(args) == 3 || validAlpha(args[3])
}

func validHSL(args []string) bool {
	if len(args) != 3 && len(args) != 4 {
		return false
	}
	if _, ok := parseNumber(strings.TrimSuffix(args[0], "deg")); !ok {
		return false
	}
	for _, part := range args[1:3] {
		pct, ok := parsePercent(part)
		if !ok || pct < 0 || pct > 100 {
			return false
		}
	}
	return len(args) == 3 || validAlpha(args[3])
}

func validAlpha(s string) bool {
	if pct, ok := parsePercent(s); ok {
		return pct >= 0 && pct <= 100
	}
	v, ok := parseNumber(s)
	return ok && v >= 0 && v <= 1
}

func parseNumber(s string) (float64, bool) {
	if !cssNumber.MatchString(s) {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	return v, err == nil
}

func parsePercent(s string) (float64, bool) {
	if !strings.HasSuffix(s, "%") {
		return 0, false
	}
	return parseNumber(strings.TrimSuffix(s, "%"))
}

var namedColors = map[string]struct{}{
	"aliceblue": {}, "antiquewhite": {}, "aqua": {}, "aquamarine": {}, "azure": {},
	"beige": {}, "bisque": {}, "black": {}, "blanchedalmond": {}, "blue": {},
	"blueviolet": {}, "brown": {}, "burlywood": {}, "cadetblue": {}, "chartreuse": {},
	"chocolate": {}, "coral": {}, "cornflowerblue": {}, "cornsilk": {}, "crimson": {},
	"cyan": {}, "darkblue": {}, "darkcyan": {}, "darkgoldenrod": {}, "darkgray": {},
	"darkgreen": {}, "darkgrey": {}, "darkkhaki": {}, "darkmagenta": {}, "darkolivegreen": {},
	"darkorange": {}, "darkorchid": {}, "darkred": {}, "darksalmon": {}, "darkseagreen": {},
	"darkslateblue": {}, "darkslategray": {}, "darkslategrey": {}, "darkturquoise": {}, "darkviolet": {},
	"deeppink": {}, "deepskyblue": {}, "dimgray": {}, "dimgrey": {}, "dodgerblue": {},
	"firebrick": {}, "floralwhite": {}, "forestgreen": {}, "fuchsia": {}, "gainsboro": {},
	"ghostwhite": {}, "gold": {}, "goldenrod": {}, "gray": {}, "green": {},
	"greenyellow": {}, "grey": {}, "honeydew": {}, "hotpink": {}, "indianred": {},
	"indigo": {}, "ivory": {}, "khaki": {}, "lavender": {}, "lavenderblush": {},
	"lawngreen": {}, "lemonchiffon": {}, "lightblue": {}, "lightcoral": {}, "lightcyan": {},
	"lightgoldenrodyellow": {}, "lightgray": {}, "lightgreen": {}, "lightgrey": {}, "lightpink": {},
	"lightsalmon": {}, "lightseagreen": {}, "lightskyblue": {}, "lightslategray": {}, "lightslategrey": {},
	"lightsteelblue": {}, "lightyellow": {}, "lime": {}, "limegreen": {}, "linen": {},
	"magenta": {}, "maroon": {}, "mediumaquamarine": {}, "mediumblue": {}, "mediumorchid": {},
	"mediumpurple": {}, "mediumseagreen": {}, "mediumslateblue": {}, "mediumspringgreen": {}, "mediumturquoise": {},
	"mediumvioletred": {}, "midnightblue": {}, "mintcream": {}, "mistyrose": {}, "moccasin": {},
	"navajowhite": {}, "navy": {}, "oldlace": {}, "olive": {}, "olivedrab": {},
	"orange": {}, "orangered": {}, "orchid": {}, "palegoldenrod": {}, "palegreen": {},
	"paleturquoise": {}, "palevioletred": {}, "papayawhip": {}, "peachpuff": {}, "peru": {},
	"pink": {}, "plum": {}, "powderblue": {}, "purple": {}, "rebeccapurple": {},
	"red": {}, "rosybrown": {}, "royalblue": {}, "saddlebrown": {}, "salmon": {},
	"sandybrown": {}, "seagreen": {}, "seashell": {}, "sienna": {}, "silver": {},
	"skyblue": {}, "slateblue": {}, "slategray": {}, "slategrey": {}, "snow": {},
	"springgreen": {}, "steelblue": {}, "tan": {}, "teal": {}, "thistle": {},
	"tomato": {}, "transparent": {}, "turquoise": {}, "violet": {}, "wheat": {},
	"white": {}, "whitesmoke": {}, "yellow": {}, "yellowgreen": {},
}
