package style

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"
)

// ParseColor accepts an SVG colour name or a #rgb, #rrggbb or #rrggbbaa
// hex value.
func ParseColor(s string) (color.RGBA, error) {
	spec := strings.ToLower(strings.TrimSpace(s))
	if spec == "" {
		return color.RGBA{}, fmt.Errorf("%w: color cannot be empty", ErrInvalid)
	}
	if c, ok := colornames.Map[spec]; ok {
		return c, nil
	}
	if spec == "transparent" {
		return color.RGBA{}, nil
	}
	if !strings.HasPrefix(spec, "#") {
		return color.RGBA{}, fmt.Errorf("%w: color %q", ErrInvalid, s)
	}
	hex := spec[1:]
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) != 6 && len(hex) != 8 {
		return color.RGBA{}, fmt.Errorf("%w: color %q", ErrInvalid, s)
	}
	var ch [4]uint8
	ch[3] = 255
	for i := 0; i < len(hex)/2; i++ {
		v, err := strconv.ParseUint(hex[i*2:i*2+2], 16, 8)
		if err != nil {
			return color.RGBA{}, fmt.Errorf("%w: color %q", ErrInvalid, s)
		}
		ch[i] = uint8(v)
	}
	return color.RGBA{ch[0], ch[1], ch[2], ch[3]}, nil
}

// FormatColor renders c as #RRGGBB, or #RRGGBBAA when not opaque.
func FormatColor(c color.RGBA) string {
	if c.A == 255 {
		return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
	}
	return fmt.Sprintf("#%02X%02X%02X%02X", c.R, c.G, c.B, c.A)
}

// ParseFont parses a CSS-like font shorthand such as "22px sans" or
// "18 mono". The family defaults to sans.
func ParseFont(s string) (Font, error) {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return Font{}, fmt.Errorf("%w: empty font", ErrInvalid)
	}
	size, err := strconv.ParseFloat(strings.TrimSuffix(strings.ToLower(fields[0]), "px"), 64)
	if err != nil || size <= 0 {
		return Font{}, fmt.Errorf("%w: font size %q", ErrInvalid, fields[0])
	}
	family := "sans"
	if len(fields) > 1 {
		family = strings.ToLower(strings.Join(fields[1:], " "))
	}
	return Font{Size: size, Family: family}, nil
}

var capNames = map[string]Cap{"round": CapRound, "butt": CapButt, "square": CapSquare}

// ParseCap parses a canvas lineCap keyword.
func ParseCap(s string) (Cap, error) {
	if c, ok := capNames[strings.ToLower(strings.TrimSpace(s))]; ok {
		return c, nil
	}
	return 0, fmt.Errorf("%w: line cap %q", ErrInvalid, s)
}

func (c Cap) String() string {
	for k, v := range capNames {
		if v == c {
			return k
		}
	}
	return strconv.Itoa(int(c))
}

var joinNames = map[string]Join{"round": JoinRound, "miter": JoinMiter, "bevel": JoinBevel}

// ParseJoin parses a canvas lineJoin keyword.
func ParseJoin(s string) (Join, error) {
	if j, ok := joinNames[strings.ToLower(strings.TrimSpace(s))]; ok {
		return j, nil
	}
	return 0, fmt.Errorf("%w: line join %q", ErrInvalid, s)
}

func (j Join) String() string {
	for k, v := range joinNames {
		if v == j {
			return k
		}
	}
	return strconv.Itoa(int(j))
}

var compositeNames = map[string]Composite{"source-over": SourceOver, "destination-out": DestinationOut}

// ParseComposite parses a canvas globalCompositeOperation keyword. Only the
// two modes the engine uses are accepted.
func ParseComposite(s string) (Composite, error) {
	if c, ok := compositeNames[strings.ToLower(strings.TrimSpace(s))]; ok {
		return c, nil
	}
	return 0, fmt.Errorf("%w: composite %q", ErrInvalid, s)
}

func (c Composite) String() string {
	for k, v := range compositeNames {
		if v == c {
			return k
		}
	}
	return strconv.Itoa(int(c))
}

// Set parses value for the named attribute and stores it in p. Keys are
// stroke, fill, alpha, width, font, cap, join, miter and composite.
func (p *Partial) Set(key, value string) error {
	switch strings.ToLower(strings.TrimSpace(key)) {
	case "stroke", "stroke_color", "color":
		c, err := ParseColor(value)
		if err != nil {
			return err
		}
		p.StrokeColor = &c
	case "fill", "fill_color":
		c, err := ParseColor(value)
		if err != nil {
			return err
		}
		p.FillColor = &c
	case "alpha":
		f, err := parseFloat(key, value)
		if err != nil {
			return err
		}
		p.Alpha = &f
	case "width", "line_width":
		f, err := parseFloat(key, value)
		if err != nil {
			return err
		}
		p.LineWidth = &f
	case "miter", "miter_limit":
		f, err := parseFloat(key, value)
		if err != nil {
			return err
		}
		p.MiterLimit = &f
	case "font":
		f, err := ParseFont(value)
		if err != nil {
			return err
		}
		p.Font = &f
	case "cap":
		c, err := ParseCap(value)
		if err != nil {
			return err
		}
		p.LineCap = &c
	case "join":
		j, err := ParseJoin(value)
		if err != nil {
			return err
		}
		p.LineJoin = &j
	case "composite":
		c, err := ParseComposite(value)
		if err != nil {
			return err
		}
		p.Composite = &c
	default:
		return fmt.Errorf("%w: unknown attribute %q", ErrInvalid, key)
	}
	return nil
}

func parseFloat(key, value string) (float64, error) {
	f, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s %q", ErrInvalid, key, value)
	}
	return f, nil
}
