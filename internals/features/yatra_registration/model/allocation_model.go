package model

import (
	"github.com/google/uuid"
)

// Which lodging a registration was allotted.
type RegistrationAccommodationModel struct {
	RegistrationAccommodationID              uuid.UUID `gorm:"column:registration_accommodation_id;type:uuid;default:gen_random_uuid();primaryKey" json:"registration_accommodation_id"`
	RegistrationAccommodationRegistrationID  uuid.UUID `gorm:"column:registration_accommodation_registration_id;type:uuid;not null;uniqueIndex:uq_registration_accommodation" json:"registration_accommodation_registration_id"`
	RegistrationAccommodationAccommodationID uuid.UUID `gorm:"column:registration_accommodation_accommodation_id;type:uuid;not null;uniqueIndex:uq_registration_accommodation" json:"registration_accommodation_accommodation_id"`

	RegistrationAccommodationRoomNumber *string `gorm:"column:registration_accommodation_room_number;type:varchar(50)" json:"registration_accommodation_room_number,omitempty"`
}

func (RegistrationAccommodationModel) TableName() string { return "registration_accommodations" }

// Which travel segments a registration rides.
type RegistrationJourneyModel struct {
	RegistrationJourneyID             uuid.UUID `gorm:"column:registration_journey_id;type:uuid;default:gen_random_uuid();primaryKey" json:"registration_journey_id"`
	RegistrationJourneyRegistrationID uuid.UUID `gorm:"column:registration_journey_registration_id;type:uuid;not null;uniqueIndex:uq_registration_journey" json:"registration_journey_registration_id"`
	RegistrationJourneyJourneyID      uuid.UUID `gorm:"column:registration_journey_journey_id;type:uuid;not null;uniqueIndex:uq_registration_journey" json:"registration_journey_journey_id"`

	RegistrationJourneySeatNumber *string `gorm:"column:registration_journey_seat_number;type:varchar(20)" json:"registration_journey_seat_number,omitempty"`
}

func (RegistrationJourneyModel) TableName() string { return "registration_journeys" }

// Selected value of an admin-defined custom field for a registration.
type RegistrationCustomFieldValueModel struct {
	RegistrationCustomFieldValueID             uuid.UUID `gorm:"column:registration_custom_field_value_id;type:uuid;default:gen_random_uuid();primaryKey" json:"registration_custom_field_value_id"`
	RegistrationCustomFieldValueRegistrationID uuid.UUID `gorm:"column:registration_custom_field_value_registration_id;type:uuid;not null;index" json:"registration_custom_field_value_registration_id"`
	RegistrationCustomFieldValueValueID        uuid.UUID `gorm:"column:registration_custom_field_value_value_id;type:uuid;not null" json:"registration_custom_field_value_value_id"`
}

func (RegistrationCustomFieldValueModel) TableName() string {
	return "registration_custom_field_values"
}
