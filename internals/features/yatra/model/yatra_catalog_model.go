package model

import (
	"time"

	"github.com/google/uuid"
)

// Travel segments of a yatra (onward / return / break).
type YatraJourneyModel struct {
	YatraJourneyID      uuid.UUID `gorm:"column:yatra_journey_id;type:uuid;default:gen_random_uuid();primaryKey" json:"yatra_journey_id"`
	YatraJourneyYatraID uuid.UUID `gorm:"column:yatra_journey_yatra_id;type:uuid;not null;index" json:"yatra_journey_yatra_id"`

	YatraJourneyType          string    `gorm:"column:yatra_journey_type;type:varchar(20);not null" json:"yatra_journey_type"`
	YatraJourneyFromLocation  string    `gorm:"column:yatra_journey_from_location;type:varchar(255);not null" json:"yatra_journey_from_location"`
	YatraJourneyToLocation    string    `gorm:"column:yatra_journey_to_location;type:varchar(255);not null" json:"yatra_journey_to_location"`
	YatraJourneyStartDatetime time.Time `gorm:"column:yatra_journey_start_datetime;not null" json:"yatra_journey_start_datetime"`
	YatraJourneyEndDatetime   time.Time `gorm:"column:yatra_journey_end_datetime;not null" json:"yatra_journey_end_datetime"`
	YatraJourneyModeOfTravel  *string   `gorm:"column:yatra_journey_mode_of_travel;type:varchar(50)" json:"yatra_journey_mode_of_travel,omitempty"`
	YatraJourneyRemarks       *string   `gorm:"column:yatra_journey_remarks;type:text" json:"yatra_journey_remarks,omitempty"`
}

func (YatraJourneyModel) TableName() string { return "yatra_journeys" }

// Lodging options for a yatra.
type YatraAccommodationModel struct {
	YatraAccommodationID      uuid.UUID `gorm:"column:yatra_accommodation_id;type:uuid;default:gen_random_uuid();primaryKey" json:"yatra_accommodation_id"`
	YatraAccommodationYatraID uuid.UUID `gorm:"column:yatra_accommodation_yatra_id;type:uuid;not null;index" json:"yatra_accommodation_yatra_id"`

	YatraAccommodationPlaceName        string    `gorm:"column:yatra_accommodation_place_name;type:varchar(255);not null" json:"yatra_accommodation_place_name"`
	YatraAccommodationAddress          *string   `gorm:"column:yatra_accommodation_address;type:text" json:"yatra_accommodation_address,omitempty"`
	YatraAccommodationCheckinDatetime  time.Time `gorm:"column:yatra_accommodation_checkin_datetime;not null" json:"yatra_accommodation_checkin_datetime"`
	YatraAccommodationCheckoutDatetime time.Time `gorm:"column:yatra_accommodation_checkout_datetime;not null" json:"yatra_accommodation_checkout_datetime"`
	YatraAccommodationContactPerson    *string   `gorm:"column:yatra_accommodation_contact_person;type:varchar(255)" json:"yatra_accommodation_contact_person,omitempty"`
	YatraAccommodationContactNumber    *string   `gorm:"column:yatra_accommodation_contact_number;type:varchar(50)" json:"yatra_accommodation_contact_number,omitempty"`
	YatraAccommodationNotes            *string   `gorm:"column:yatra_accommodation_notes;type:text" json:"yatra_accommodation_notes,omitempty"`
}

func (YatraAccommodationModel) TableName() string { return "yatra_accommodations" }

// Admin-defined extra fields (t-shirt size, seva preference, ...).
type YatraCustomFieldModel struct {
	YatraCustomFieldID      uuid.UUID `gorm:"column:yatra_custom_field_id;type:uuid;default:gen_random_uuid();primaryKey" json:"yatra_custom_field_id"`
	YatraCustomFieldYatraID uuid.UUID `gorm:"column:yatra_custom_field_yatra_id;type:uuid;not null;index" json:"yatra_custom_field_yatra_id"`

	YatraCustomFieldName       string `gorm:"column:yatra_custom_field_name;type:varchar(255);not null" json:"yatra_custom_field_name"`
	YatraCustomFieldType       string `gorm:"column:yatra_custom_field_type;type:varchar(20);not null;default:text" json:"yatra_custom_field_type"`
	YatraCustomFieldIsMultiple bool   `gorm:"column:yatra_custom_field_is_multiple;not null;default:false" json:"yatra_custom_field_is_multiple"`
	YatraCustomFieldOrder      int    `gorm:"column:yatra_custom_field_order;not null;default:0" json:"yatra_custom_field_order"`
}

func (YatraCustomFieldModel) TableName() string { return "yatra_custom_fields" }

type YatraCustomFieldValueModel struct {
	YatraCustomFieldValueID      uuid.UUID `gorm:"column:yatra_custom_field_value_id;type:uuid;default:gen_random_uuid();primaryKey" json:"yatra_custom_field_value_id"`
	YatraCustomFieldValueFieldID uuid.UUID `gorm:"column:yatra_custom_field_value_field_id;type:uuid;not null;index" json:"yatra_custom_field_value_field_id"`

	YatraCustomFieldValueValue string `gorm:"column:yatra_custom_field_value_value;type:text;not null" json:"yatra_custom_field_value_value"`
}

func (YatraCustomFieldValueModel) TableName() string { return "yatra_custom_field_values" }

// Registration form fields shown to the registrant.
type YatraFormFieldModel struct {
	YatraFormFieldID      uuid.UUID `gorm:"column:yatra_form_field_id;type:uuid;default:gen_random_uuid();primaryKey" json:"yatra_form_field_id"`
	YatraFormFieldYatraID uuid.UUID `gorm:"column:yatra_form_field_yatra_id;type:uuid;not null;index" json:"yatra_form_field_yatra_id"`

	YatraFormFieldName       string  `gorm:"column:yatra_form_field_name;type:varchar(100);not null" json:"yatra_form_field_name"`
	YatraFormFieldLabel      string  `gorm:"column:yatra_form_field_label;type:varchar(200);not null" json:"yatra_form_field_label"`
	YatraFormFieldType       string  `gorm:"column:yatra_form_field_type;type:varchar(20);not null;default:text" json:"yatra_form_field_type"`
	YatraFormFieldOptions    *string `gorm:"column:yatra_form_field_options;type:text" json:"yatra_form_field_options,omitempty"`
	YatraFormFieldIsRequired bool    `gorm:"column:yatra_form_field_is_required;not null;default:false" json:"yatra_form_field_is_required"`
	YatraFormFieldOrder      int     `gorm:"column:yatra_form_field_order;not null;default:0" json:"yatra_form_field_order"`
}

func (YatraFormFieldModel) TableName() string { return "yatra_form_fields" }
