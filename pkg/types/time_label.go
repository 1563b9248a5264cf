package types

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// ErrInvalidTimeLabel возвращается, когда строка не соответствует формату "H:MM AM|PM"
var ErrInvalidTimeLabel = errors.New("invalid time label format, expected H:MM AM|PM")

var (
	timeLabelRegexp  = regexp.MustCompile(`^(1[0-2]|0?[1-9]):([0-5][0-9])\s*([AaPp][Mm])$`)
	whitespaceRegexp = regexp.MustCompile(`\s+`)
)

// TimeLabel время начала слота в 12-часовом формате, например "9:00 AM"
// Всегда хранится в нормализованном виде: час без ведущего нуля, AM/PM в верхнем регистре
type TimeLabel struct {
	hour     int // 1-12
	minute   int // 0-59
	meridiem string
}

// ParseTimeLabel разбирает и нормализует строку времени
// Допускает "09:00 am", " 9:00AM " и т.п., результат всегда "9:00 AM"
func ParseTimeLabel(s string) (TimeLabel, error) {
	cleaned := whitespaceRegexp.ReplaceAllString(strings.TrimSpace(s), " ")

	m := timeLabelRegexp.FindStringSubmatch(cleaned)
	if m == nil {
		return TimeLabel{}, fmt.Errorf("%w: %q", ErrInvalidTimeLabel, s)
	}

	hour, _ := strconv.Atoi(m[1])
	minute, _ := strconv.Atoi(m[2])

	return TimeLabel{
		hour:     hour,
		minute:   minute,
		meridiem: strings.ToUpper(m[3]),
	}, nil
}

// MustParseTimeLabel как ParseTimeLabel, но паникует при ошибке (для констант и тестов)
func MustParseTimeLabel(s string) TimeLabel {
	t, err := ParseTimeLabel(s)
	if err != nil {
		panic(err)
	}
	return t
}

// TimeLabelFromMinutes строит метку из количества минут от полуночи
func TimeLabelFromMinutes(minutes int) (TimeLabel, error) {
	if minutes < 0 || minutes >= 24*60 {
		return TimeLabel{}, fmt.Errorf("%w: minute of day %d out of range", ErrInvalidTimeLabel, minutes)
	}

	h24 := minutes / 60
	meridiem := "AM"
	if h24 >= 12 {
		meridiem = "PM"
	}

	hour := h24 % 12
	if hour == 0 {
		hour = 12
	}

	return TimeLabel{hour: hour, minute: minutes % 60, meridiem: meridiem}, nil
}

// String возвращает нормализованное представление
func (t TimeLabel) String() string {
	if t.IsZero() {
		return ""
	}
	return fmt.Sprintf("%d:%02d %s", t.hour, t.minute, t.meridiem)
}

// IsZero возвращает true для неинициализированной метки
func (t TimeLabel) IsZero() bool {
	return t.hour == 0
}

// MinuteOfDay количество минут от полуночи (12:00 AM = 0, 12:00 PM = 720)
func (t TimeLabel) MinuteOfDay() int {
	h := t.hour % 12
	if t.meridiem == "PM" {
		h += 12
	}
	return h*60 + t.minute
}

// IsBefore проверяет, что t раньше other в пределах одного дня
func (t TimeLabel) IsBefore(other TimeLabel) bool {
	return t.MinuteOfDay() < other.MinuteOfDay()
}

// Equal сравнивает нормализованные метки
func (t TimeLabel) Equal(other TimeLabel) bool {
	return t == other
}

// Value реализует driver.Valuer, в БД хранится нормализованная строка
func (t TimeLabel) Value() (driver.Value, error) {
	return t.String(), nil
}

// Scan реализует sql.Scanner
func (t *TimeLabel) Scan(src interface{}) error {
	var s string
	switch v := src.(type) {
	case string:
		s = v
	case []byte:
		s = string(v)
	default:
		return fmt.Errorf("%w: cannot scan %T", ErrInvalidTimeLabel, src)
	}

	parsed, err := ParseTimeLabel(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// SortTimeLabels сортирует метки в хронологическом порядке (на месте)
func SortTimeLabels(labels []TimeLabel) {
	sort.Slice(labels, func(i, j int) bool {
		return labels[i].IsBefore(labels[j])
	})
}

// ParseTimeLabels разбирает список строк, удаляет дубликаты и сортирует результат
func ParseTimeLabels(raw []string) ([]TimeLabel, error) {
	seen := make(map[TimeLabel]struct{}, len(raw))
	result := make([]TimeLabel, 0, len(raw))

	for _, s := range raw {
		label, err := ParseTimeLabel(s)
		if err != nil {
			return nil, err
		}
		if _, ok := seen[label]; ok {
			continue
		}
		seen[label] = struct{}{}
		result = append(result, label)
	}

	SortTimeLabels(result)
	return result, nil
}

// TimeLabelStrings конвертирует метки в строки
func TimeLabelStrings(labels []TimeLabel) []string {
	result := make([]string, len(labels))
	for i, l := range labels {
		result[i] = l.String()
	}
	return result
}
