package service

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	model "iysyatra_backend/internals/features/users/profile/model"
	helper "iysyatra_backend/internals/helpers"
)

// Member ids are bucketed sequences: YY (2-digit year) + C (center code)
// + NNN (001..999). The id is printed on physical ID cards, so a bucket
// max is read under FOR UPDATE and the allocation must share the caller's
// transaction with the write that consumes it.

const bucketSize = 1000

// BucketRange returns the inclusive [YYC000, YYC999] range for a bucket.
func BucketRange(year2 string, centerCode string) (int, int, error) {
	if len(year2) != 2 {
		return 0, 0, fmt.Errorf("year must be 2 digits, got %q", year2)
	}
	if len(centerCode) != 1 {
		return 0, 0, fmt.Errorf("center code must be 1 digit, got %q", centerCode)
	}
	prefix, err := strconv.Atoi(year2 + centerCode)
	if err != nil {
		return 0, 0, fmt.Errorf("non-numeric bucket prefix %q%q", year2, centerCode)
	}
	start := prefix * bucketSize
	return start, start + bucketSize - 1, nil
}

// NextInBucket computes the next sequential id given the current maximum
// in the bucket (0 when the bucket is empty).
func NextInBucket(currentMax, start, end int) (int, error) {
	next := start + 1
	if currentMax != 0 {
		next = currentMax + 1
	}
	if next > end {
		return 0, helper.ErrSequenceOverflow("member id sequence overflow for this year and center")
	}
	return next, nil
}

// FormatMemberID renders the id as the 6-digit string printed on cards.
func FormatMemberID(memberID int) string {
	return fmt.Sprintf("%06d", memberID)
}

// YearCode is the 2-digit year bucket component for a point in time.
func YearCode(now time.Time) string {
	return now.Format("06")
}

// AllocateMemberID reserves the next id in (year, center) inside tx.
// The SELECT takes a row lock on the current bucket maximum so two
// concurrent allocations in the same bucket serialize instead of
// colliding; the caller must commit the profile write in the same tx.
func AllocateMemberID(tx *gorm.DB, year2 string, centerCode string) (int, error) {
	start, end, err := BucketRange(year2, centerCode)
	if err != nil {
		return 0, helper.ErrBadRequest(err.Error())
	}

	var last model.ProfileModel
	err = tx.
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("profile_member_id BETWEEN ? AND ?", start, end).
		Order("profile_member_id DESC").
		First(&last).Error

	currentMax := 0
	if err == nil {
		currentMax = last.ProfileMemberID
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, err
	}

	return NextInBucket(currentMax, start, end)
}
