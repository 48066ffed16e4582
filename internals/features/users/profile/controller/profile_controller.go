package controller

import (
	"errors"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	dto "iysyatra_backend/internals/features/users/profile/dto"
	model "iysyatra_backend/internals/features/users/profile/model"
	service "iysyatra_backend/internals/features/users/profile/service"
	helper "iysyatra_backend/internals/helpers"
)

type ProfileController struct {
	DB      *gorm.DB
	Service *service.ProfileService
}

func NewProfileController(db *gorm.DB) *ProfileController {
	return &ProfileController{DB: db, Service: service.NewProfileService(db)}
}

/* ======================= ME ======================= */
// GET /api/u/profiles/me
// Creates the profile on first sight (member id in the pending bucket).
func (h *ProfileController) GetMe(c *fiber.Ctx) error {
	profileID, err := helper.GetProfileIDFromToken(c)
	if err != nil {
		return err
	}

	p, err := h.Service.EnsureProfile(profileID, time.Now())
	if err != nil {
		return err
	}
	return helper.JsonOK(c, "OK", dto.FromProfileModel(*p))
}

/* ======================= UPDATE ME ======================= */
// PUT /api/u/profiles/me
func (h *ProfileController) UpdateMe(c *fiber.Ctx) error {
	profileID, err := helper.GetProfileIDFromToken(c)
	if err != nil {
		return err
	}

	var req dto.UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid payload")
	}
	if err := validator.New().Struct(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	p, err := h.Service.EnsureProfile(profileID, time.Now())
	if err != nil {
		return err
	}

	patch := req.Patch()
	if len(patch) == 0 {
		return helper.JsonOK(c, "no changes", dto.FromProfileModel(*p))
	}

	if err := h.DB.Model(&model.ProfileModel{}).
		Where("profile_id = ?", profileID).
		Updates(patch).Error; err != nil {
		if helper.IsUniqueViolation(err) {
			return fiber.NewError(fiber.StatusConflict, "aadhar number already registered")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "failed to update profile")
	}

	var updated model.ProfileModel
	if err := h.DB.Where("profile_id = ?", profileID).First(&updated).Error; err != nil {
		return helper.JsonUpdated(c, "profile updated", dto.FromProfileModel(*p))
	}
	return helper.JsonUpdated(c, "profile updated", dto.FromProfileModel(updated))
}

/* ======================= LOOKUP BY MEMBER ID ======================= */
// GET /api/u/profiles/by-member-id/:member_id
// Used by the substitution flow to resolve the target person.
func (h *ProfileController) GetByMemberID(c *fiber.Ctx) error {
	if _, err := helper.GetProfileIDFromToken(c); err != nil {
		return err
	}

	memberID, err := strconv.Atoi(c.Params("member_id"))
	if err != nil || memberID <= 0 {
		return fiber.NewError(fiber.StatusBadRequest, "invalid member id")
	}

	p, err := h.Service.GetByMemberID(memberID)
	if err != nil {
		return err
	}

	// limited public view: enough to confirm "is this the right person"
	resp := dto.FromProfileModel(*p)
	return helper.JsonOK(c, "OK", fiber.Map{
		"profile_id":          resp.ProfileID,
		"member_id":           resp.MemberID,
		"member_id_formatted": resp.MemberIDFormatted,
		"first_name":          resp.FirstName,
		"last_name":           resp.LastName,
		"center":              resp.Center,
	})
}

/* ======================= MENTEES ======================= */
// GET /api/u/profiles/mentees
// Profiles whose approved mentor is the acting profile.
func (h *ProfileController) ListMentees(c *fiber.Ctx) error {
	profileID, err := helper.GetProfileIDFromToken(c)
	if err != nil {
		return err
	}

	var mentees []model.ProfileModel
	if err := h.DB.
		Joins("JOIN mentor_requests ON mentor_request_from_profile_id = profile_id").
		Where("mentor_request_to_mentor_id = ? AND mentor_request_is_approved", profileID).
		Find(&mentees).Error; err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
	}

	out := make([]dto.ProfileResponse, 0, len(mentees))
	for _, m := range mentees {
		out = append(out, dto.FromProfileModel(m))
	}
	return helper.JsonList(c, "OK", out, nil)
}
