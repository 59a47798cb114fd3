package services

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/dmitrijs2005/eventdesk/internal/common"
	"github.com/dmitrijs2005/eventdesk/internal/server/models"
	dps "github.com/markusmobius/go-dateparser"
)

// timeLayouts are the accepted spellings of an event time.
var timeLayouts = []string{
	models.TimeLayout,
	"15:04:05",
	"3:04 PM",
	"3:04PM",
	"3:04 pm",
	"3:04pm",
	"3 PM",
	"3PM",
}

// isoShape matches input written as year-month-day; such input must be a
// real calendar date and never goes through dateparser.
var isoShape = regexp.MustCompile(`^\d{4}-\d{1,2}-\d{1,2}$`)

// dateConfig only accepts dates with day, month and year.
var dateConfig = &dps.Configuration{StrictParsing: true}

// normalizeDate returns s as models.DateLayout so stored dates sort
// chronologically. ISO input is checked as is, anything else goes through
// dateparser. Partial or impossible dates are rejected.
func normalizeDate(s string) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", common.ErrInvalidDate
	}
	if isoShape.MatchString(s) {
		t, err := time.Parse("2006-1-2", s)
		if err != nil {
			return "", fmt.Errorf("%w: %q", common.ErrInvalidDate, s)
		}
		return t.Format(models.DateLayout), nil
	}

	d, err := dps.Parse(dateConfig, s)
	if err != nil || d.Time.IsZero() {
		return "", fmt.Errorf("%w: %q", common.ErrInvalidDate, s)
	}
	return d.Time.Format(models.DateLayout), nil
}

// normalizeTime returns s as models.TimeLayout. An empty time stays empty.
func normalizeTime(s string) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", nil
	}
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format(models.TimeLayout), nil
		}
	}
	return "", fmt.Errorf("%w: %q", common.ErrInvalidTime, s)
}
