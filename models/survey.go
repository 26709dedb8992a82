package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// LikedMost is one aspect of campus a respondent can pick (multi-select).
type LikedMost string

const (
	LikedStudents   LikedMost = "students"
	LikedLocation   LikedMost = "location"
	LikedCampus     LikedMost = "campus"
	LikedAtmosphere LikedMost = "atmosphere"
	LikedDormRooms  LikedMost = "dorm_rooms"
	LikedSports     LikedMost = "sports"
)

func (l LikedMost) Valid() bool {
	switch l {
	case LikedStudents, LikedLocation, LikedCampus, LikedAtmosphere, LikedDormRooms, LikedSports:
		return true
	}
	return false
}

// InterestSource is how the student became interested in the university.
type InterestSource string

const (
	InterestFriends    InterestSource = "friends"
	InterestTelevision InterestSource = "television"
	InterestInternet   InterestSource = "internet"
	InterestOther      InterestSource = "other"
)

func (s InterestSource) Valid() bool {
	switch s {
	case InterestFriends, InterestTelevision, InterestInternet, InterestOther:
		return true
	}
	return false
}

// RecommendationLikelihood is how likely the student is to recommend the school.
type RecommendationLikelihood string

const (
	RecommendVeryLikely RecommendationLikelihood = "very_likely"
	RecommendLikely     RecommendationLikelihood = "likely"
	RecommendUnlikely   RecommendationLikelihood = "unlikely"
)

func (r RecommendationLikelihood) Valid() bool {
	switch r {
	case RecommendVeryLikely, RecommendLikely, RecommendUnlikely:
		return true
	}
	return false
}

// LikedMostList is stored as a JSON column, preserving duplicates and order
// exactly as submitted.
type LikedMostList []LikedMost

func (l LikedMostList) Value() (driver.Value, error) {
	if l == nil {
		l = LikedMostList{}
	}
	b, err := json.Marshal(l)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (l *LikedMostList) Scan(src interface{}) error {
	if src == nil {
		*l = LikedMostList{}
		return nil
	}
	var data []byte
	switch v := src.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("liked_most: cannot scan %T", src)
	}
	if len(data) == 0 {
		*l = LikedMostList{}
		return nil
	}
	return json.Unmarshal(data, l)
}

// DateLayout is the wire format for date_of_survey.
const DateLayout = "2006-01-02"

// Date is a calendar date (no time component) serialized as YYYY-MM-DD.
type Date struct {
	time.Time
}

func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.Format(DateLayout) + `"`), nil
}

func (d *Date) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		return nil
	}
	// Anything else that is present must parse, including the empty string.
	s := strings.Trim(string(data), `"`)
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return fmt.Errorf("date_of_survey must be YYYY-MM-DD: %w", err)
	}
	d.Time = t
	return nil
}

func (d Date) Value() (driver.Value, error) {
	return d.Time, nil
}

func (d *Date) Scan(src interface{}) error {
	switch v := src.(type) {
	case time.Time:
		d.Time = v
		return nil
	case []byte:
		return d.parse(string(v))
	case string:
		return d.parse(v)
	case nil:
		return nil
	}
	return fmt.Errorf("date_of_survey: cannot scan %T", src)
}

func (d *Date) parse(s string) error {
	// Drivers return either a bare date or a full timestamp depending on
	// the column type they ended up with.
	for _, layout := range []string{DateLayout, time.RFC3339, "2006-01-02 15:04:05-07:00", "2006-01-02 15:04:05"} {
		if t, err := time.Parse(layout, s); err == nil {
			d.Time = t
			return nil
		}
	}
	return fmt.Errorf("date_of_survey: cannot parse %q", s)
}

type Survey struct {
	ID                       uint                     `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	FirstName                string                   `gorm:"column:first_name;size:255;not null;index" json:"first_name"`
	LastName                 string                   `gorm:"column:last_name;size:255;not null;index" json:"last_name"`
	StreetAddress            string                   `gorm:"column:street_address;size:255;not null" json:"street_address"`
	City                     string                   `gorm:"column:city;size:255;not null" json:"city"`
	State                    string                   `gorm:"column:state;size:2;not null" json:"state"`
	ZipCode                  string                   `gorm:"column:zip_code;size:10;not null" json:"zip_code"`
	Phone                    string                   `gorm:"column:phone;size:20;not null" json:"phone"`
	Email                    string                   `gorm:"column:email;size:255;not null;index" json:"email"`
	DateOfSurvey             Date                     `gorm:"column:date_of_survey;type:date;not null" json:"date_of_survey"`
	LikedMost                LikedMostList            `gorm:"column:liked_most;type:json" json:"liked_most"`
	InterestSource           InterestSource           `gorm:"column:interest_source;size:20;not null" json:"interest_source"`
	RecommendationLikelihood RecommendationLikelihood `gorm:"column:recommendation_likelihood;size:20;not null" json:"recommendation_likelihood"`
	AdditionalComments       *string                  `gorm:"column:additional_comments;size:1000" json:"additional_comments"`
	CreatedAt                time.Time                `gorm:"column:created_at;not null" json:"created_at"`
	UpdatedAt                time.Time                `gorm:"column:updated_at;not null" json:"updated_at"`
}

func (Survey) TableName() string {
	return "student_surveys"
}
