package keying

import (
	"fmt"
	"strconv"
	"strings"
)

// ChannelRange is an inclusive box in RGB space.
//
// Bounds are plain integers and are not validated: an inverted channel
// (Min > Max) matches nothing, and bounds outside 0-255 are allowed.
type ChannelRange struct {
	MinR int `json:"min_r"`
	MinG int `json:"min_g"`
	MinB int `json:"min_b"`
	MaxR int `json:"max_r"`
	MaxG int `json:"max_g"`
	MaxB int `json:"max_b"`
}

// NewChannelRange builds a range from its six bounds.
func NewChannelRange(minR, minG, minB, maxR, maxG, maxB int) ChannelRange {
	return ChannelRange{
		MinR: minR, MinG: minG, MinB: minB,
		MaxR: maxR, MaxG: maxG, MaxB: maxB,
	}
}

// Contains reports whether the colour (r, g, b) lies inside the box.
// Alpha plays no part in the decision.
func (c ChannelRange) Contains(r, g, b uint8) bool {
	ri, gi, bi := int(r), int(g), int(b)
	return c.MinR <= ri && ri <= c.MaxR &&
		c.MinG <= gi && gi <= c.MaxG &&
		c.MinB <= bi && bi <= c.MaxB
}

// String renders the range as "min(r,g,b) max(r,g,b)".
func (c ChannelRange) String() string {
	return fmt.Sprintf("min(%d,%d,%d) max(%d,%d,%d)",
		c.MinR, c.MinG, c.MinB, c.MaxR, c.MaxG, c.MaxB)
}

// rangeFieldNames is the order in which ParseRange consumes its fields.
var rangeFieldNames = [6]string{"min_r", "min_g", "min_b", "max_r", "max_g", "max_b"}

// ParseRange parses six textual threshold fields into a ChannelRange.
//
// Surrounding whitespace is ignored and an optional sign is accepted. Any
// field that is not an integer yields an error wrapping ErrInvalidRange that
// names the offending field. Inverted and out-of-domain values parse fine.
func ParseRange(minR, minG, minB, maxR, maxG, maxB string) (ChannelRange, error) {
	fields := [6]string{minR, minG, minB, maxR, maxG, maxB}
	var vals [6]int
	for i, f := range fields {
		v, err := parseField(rangeFieldNames[i], f)
		if err != nil {
			return ChannelRange{}, err
		}
		vals[i] = v
	}
	return NewChannelRange(vals[0], vals[1], vals[2], vals[3], vals[4], vals[5]), nil
}

// Override returns c with every bound whose override is non-nil replaced by
// the parsed value. Overrides are in min_r, min_g, min_b, max_r, max_g, max_b
// order; a non-integer override yields an error wrapping ErrInvalidRange.
func (c ChannelRange) Override(overrides [6]*string) (ChannelRange, error) {
	dst := [6]*int{&c.MinR, &c.MinG, &c.MinB, &c.MaxR, &c.MaxG, &c.MaxB}
	for i, text := range overrides {
		if text == nil {
			continue
		}
		v, err := parseField(rangeFieldNames[i], *text)
		if err != nil {
			return ChannelRange{}, err
		}
		*dst[i] = v
	}
	return c, nil
}

func parseField(name, text string) (int, error) {
	v, err := strconv.Atoi(strings.TrimSpace(text))
	if err != nil {
		return 0, fmt.Errorf("%w: %s=%q is not an integer", ErrInvalidRange, name, text)
	}
	return v, nil
}
