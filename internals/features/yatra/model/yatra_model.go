package model

import (
	"time"

	"github.com/google/uuid"
)

type YatraModel struct {
	YatraID uuid.UUID `gorm:"column:yatra_id;type:uuid;default:gen_random_uuid();primaryKey" json:"yatra_id"`

	YatraTitle       string    `gorm:"column:yatra_title;type:varchar(255);not null" json:"yatra_title"`
	YatraDescription string    `gorm:"column:yatra_description;type:text;not null" json:"yatra_description"`
	YatraStartDate   time.Time `gorm:"column:yatra_start_date;type:date;not null" json:"yatra_start_date"`
	YatraEndDate     time.Time `gorm:"column:yatra_end_date;type:date;not null" json:"yatra_end_date"`
	YatraLocation    string    `gorm:"column:yatra_location;type:varchar(255);not null" json:"yatra_location"`
	YatraCapacity    int       `gorm:"column:yatra_capacity;not null" json:"yatra_capacity"`

	// Window flags; checked by registration / RCS / substitution flows.
	YatraIsRegistrationOpen bool `gorm:"column:yatra_is_registration_open;not null;default:true" json:"yatra_is_registration_open"`
	YatraIsRcsDownloadOpen  bool `gorm:"column:yatra_is_rcs_download_open;not null;default:false" json:"yatra_is_rcs_download_open"`
	YatraIsSubstitutionOpen bool `gorm:"column:yatra_is_substitution_open;not null;default:false" json:"yatra_is_substitution_open"`

	// Funds move out-of-band over UPI; the id is only displayed to payers.
	YatraPaymentUpiID *string `gorm:"column:yatra_payment_upi_id;type:varchar(255)" json:"yatra_payment_upi_id,omitempty"`

	YatraSubstitutionFeeINR int `gorm:"column:yatra_substitution_fee_inr;not null;default:500" json:"yatra_substitution_fee_inr"`
	YatraCancellationFeeINR int `gorm:"column:yatra_cancellation_fee_inr;not null;default:0" json:"yatra_cancellation_fee_inr"`

	YatraCreatedAt time.Time `gorm:"column:yatra_created_at;autoCreateTime" json:"yatra_created_at"`

	Installments []YatraInstallmentModel `gorm:"foreignKey:YatraInstallmentYatraID;references:YatraID" json:"-"`
}

func (YatraModel) TableName() string { return "yatras" }

// YatraInstallmentModel is the payment schedule of record: the set of
// installments for a yatra defines how much is owed.
type YatraInstallmentModel struct {
	YatraInstallmentID      uuid.UUID `gorm:"column:yatra_installment_id;type:uuid;default:gen_random_uuid();primaryKey" json:"yatra_installment_id"`
	YatraInstallmentYatraID uuid.UUID `gorm:"column:yatra_installment_yatra_id;type:uuid;not null;uniqueIndex:uq_yatra_installment_label" json:"yatra_installment_yatra_id"`

	YatraInstallmentLabel     string `gorm:"column:yatra_installment_label;type:varchar(100);not null;uniqueIndex:uq_yatra_installment_label" json:"yatra_installment_label"`
	YatraInstallmentAmountINR int    `gorm:"column:yatra_installment_amount_inr;not null;check:yatra_installment_amount_inr > 0" json:"yatra_installment_amount_inr"`
	YatraInstallmentOrder     int    `gorm:"column:yatra_installment_order;not null;default:0" json:"yatra_installment_order"`
}

func (YatraInstallmentModel) TableName() string { return "yatra_installments" }
