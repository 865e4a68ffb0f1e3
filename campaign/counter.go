// Package campaign implements the campaign counter: the (year, campaign) pair that
// identifies the current sales period and rolls over into the next or previous year.
package campaign

import (
	"errors"
	"fmt"
)

// ErrInvalidCounter is returned for counters or directions Advance cannot work with
var ErrInvalidCounter = errors.New("invalid campaign counter")

// Defaults used when no settings have been saved yet
const (
	DefaultYear         = 2025
	DefaultCampaign     = 1
	DefaultLastCampaign = 30
)

// Year range offered by the settings screen. Advance itself is unbounded.
const (
	DisplayYearMin = 2020
	DisplayYearMax = 2035
)

// Direction moves the counter forward or back
type Direction int

const (
	Previous Direction = -1
	Next     Direction = 1
)

func (d Direction) String() string {
	switch d {
	case Next:
		return "next"
	case Previous:
		return "previous"
	}
	return fmt.Sprintf("Direction(%d)", int(d))
}

// Counter is the current campaign settings value
type Counter struct {
	Year         int `json:"year"`
	Campaign     int `json:"campaign"`
	LastCampaign int `json:"lastCampaign"`
}

// Default returns the counter used before any settings exist
func Default() Counter {
	return Counter{Year: DefaultYear, Campaign: DefaultCampaign, LastCampaign: DefaultLastCampaign}
}

// Validate checks 1 <= campaign <= last
func (c Counter) Validate() error {
	if c.LastCampaign < 1 {
		return fmt.Errorf("%w: last campaign %d must be at least 1", ErrInvalidCounter, c.LastCampaign)
	}
	if c.Campaign < 1 || c.Campaign > c.LastCampaign {
		return fmt.Errorf("%w: campaign %d must be between 1 and %d", ErrInvalidCounter, c.Campaign, c.LastCampaign)
	}
	return nil
}

// Advance returns the counter one campaign after (Next) or before (Previous) c.
// Crossing either end of the year rolls the year.
func Advance(c Counter, dir Direction) (Counter, error) {
	if c.LastCampaign < 1 {
		return c, fmt.Errorf("%w: last campaign %d must be at least 1", ErrInvalidCounter, c.LastCampaign)
	}

	switch dir {
	case Next:
		if c.Campaign < c.LastCampaign {
			c.Campaign++
		} else {
			c.Campaign = 1
			c.Year++
		}
	case Previous:
		switch {
		case c.Campaign > c.LastCampaign:
			// last campaign was lowered below the current one
			c.Campaign = c.LastCampaign
		case c.Campaign > 1:
			c.Campaign--
		default:
			c.Campaign = c.LastCampaign
			c.Year--
		}
	default:
		return c, fmt.Errorf("%w: direction %d", ErrInvalidCounter, int(dir))
	}
	return c, nil
}
