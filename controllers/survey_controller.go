package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/swe645/student-survey-api/models"
)

const surveyNotFound = "Survey not found"

/* ========== POST /api/surveys ========== */

type createSurveyReq struct {
	FirstName                string                          `json:"first_name" binding:"required,min=1,max=255"`
	LastName                 string                          `json:"last_name" binding:"required,min=1,max=255"`
	StreetAddress            string                          `json:"street_address" binding:"required,min=1,max=255"`
	City                     string                          `json:"city" binding:"required,min=1,max=255"`
	State                    string                          `json:"state" binding:"required,len=2"`
	ZipCode                  string                          `json:"zip_code" binding:"required,min=5,max=10"`
	Phone                    string                          `json:"phone" binding:"required,min=7,max=20"`
	Email                    string                          `json:"email" binding:"required,max=255"`
	DateOfSurvey             models.Date                     `json:"date_of_survey" binding:"required"`
	LikedMost                []models.LikedMost              `json:"liked_most" binding:"required,dive,oneof=students location campus atmosphere dorm_rooms sports"`
	InterestSource           models.InterestSource           `json:"interest_source" binding:"required,oneof=friends television internet other"`
	RecommendationLikelihood models.RecommendationLikelihood `json:"recommendation_likelihood" binding:"required,oneof=very_likely likely unlikely"`
	AdditionalComments       *string                         `json:"additional_comments" binding:"omitempty,max=1000"`
}

func CreateSurvey(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req createSurveyReq
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"message": "Invalid payload", "error": err.Error()})
			return
		}

		survey := models.Survey{
			FirstName:                req.FirstName,
			LastName:                 req.LastName,
			StreetAddress:            req.StreetAddress,
			City:                     req.City,
			State:                    strings.ToUpper(req.State),
			ZipCode:                  req.ZipCode,
			Phone:                    req.Phone,
			Email:                    req.Email,
			DateOfSurvey:             req.DateOfSurvey,
			LikedMost:                models.LikedMostList(req.LikedMost),
			InterestSource:           req.InterestSource,
			RecommendationLikelihood: req.RecommendationLikelihood,
			AdditionalComments:       req.AdditionalComments,
		}

		if err := db.Create(&survey).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Could not create survey"})
			return
		}

		c.JSON(http.StatusCreated, survey)
	}
}

/* ========== GET /api/surveys ========== */

type listSurveysQuery struct {
	Skip  int `form:"skip,default=0" binding:"gte=0"`
	Limit int `form:"limit,default=100" binding:"gte=1,lte=500"`
}

func ListSurveys(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var q listSurveysQuery
		if err := c.ShouldBindQuery(&q); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"message": "Invalid query parameters", "error": err.Error()})
			return
		}

		surveys := make([]models.Survey, 0)
		if err := db.
			Order("created_at DESC").
			Offset(q.Skip).
			Limit(q.Limit).
			Find(&surveys).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Could not list surveys"})
			return
		}

		c.JSON(http.StatusOK, surveys)
	}
}

/* ========== GET /api/surveys/:id ========== */

func GetSurvey(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil || id <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid survey id"})
			return
		}

		var survey models.Survey
		if err := db.First(&survey, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"detail": surveyNotFound})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Could not get survey"})
			return
		}

		c.JSON(http.StatusOK, survey)
	}
}

/* ========== PUT /api/surveys/:id ========== */

// Every field is a pointer so an absent field is distinguishable from an
// explicit zero; only supplied fields are applied.
type updateSurveyReq struct {
	FirstName                *string                          `json:"first_name" binding:"omitempty,min=1,max=255"`
	LastName                 *string                          `json:"last_name" binding:"omitempty,min=1,max=255"`
	StreetAddress            *string                          `json:"street_address" binding:"omitempty,min=1,max=255"`
	City                     *string                          `json:"city" binding:"omitempty,min=1,max=255"`
	State                    *string                          `json:"state" binding:"omitempty,len=2"`
	ZipCode                  *string                          `json:"zip_code" binding:"omitempty,min=5,max=10"`
	Phone                    *string                          `json:"phone" binding:"omitempty,min=7,max=20"`
	Email                    *string                          `json:"email" binding:"omitempty,max=255"`
	DateOfSurvey             *models.Date                     `json:"date_of_survey"`
	LikedMost                *[]models.LikedMost              `json:"liked_most" binding:"omitempty,dive,oneof=students location campus atmosphere dorm_rooms sports"`
	InterestSource           *models.InterestSource           `json:"interest_source" binding:"omitempty,oneof=friends television internet other"`
	RecommendationLikelihood *models.RecommendationLikelihood `json:"recommendation_likelihood" binding:"omitempty,oneof=very_likely likely unlikely"`
	// NullString so an explicit null clears the comment while an absent key
	// leaves it untouched.
	AdditionalComments models.NullString `json:"additional_comments"`
}

func (req *updateSurveyReq) validate() error {
	if req.AdditionalComments.Set && req.AdditionalComments.Value != nil && len(*req.AdditionalComments.Value) > 1000 {
		return errors.New("additional_comments must be at most 1000 characters")
	}
	return nil
}

func (req *updateSurveyReq) updates() map[string]interface{} {
	updates := map[string]interface{}{}
	if req.FirstName != nil {
		updates["first_name"] = *req.FirstName
	}
	if req.LastName != nil {
		updates["last_name"] = *req.LastName
	}
	if req.StreetAddress != nil {
		updates["street_address"] = *req.StreetAddress
	}
	if req.City != nil {
		updates["city"] = *req.City
	}
	if req.State != nil {
		updates["state"] = strings.ToUpper(*req.State)
	}
	if req.ZipCode != nil {
		updates["zip_code"] = *req.ZipCode
	}
	if req.Phone != nil {
		updates["phone"] = *req.Phone
	}
	if req.Email != nil {
		updates["email"] = *req.Email
	}
	if req.DateOfSurvey != nil {
		updates["date_of_survey"] = *req.DateOfSurvey
	}
	if req.LikedMost != nil {
		updates["liked_most"] = models.LikedMostList(*req.LikedMost)
	}
	if req.InterestSource != nil {
		updates["interest_source"] = *req.InterestSource
	}
	if req.RecommendationLikelihood != nil {
		updates["recommendation_likelihood"] = *req.RecommendationLikelihood
	}
	if req.AdditionalComments.Set {
		// A nil value is an explicit null and clears the column.
		updates["additional_comments"] = req.AdditionalComments.Value
	}
	return updates
}

func UpdateSurvey(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil || id <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid survey id"})
			return
		}

		var req updateSurveyReq
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"message": "Invalid payload", "error": err.Error()})
			return
		}
		if err := req.validate(); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"message": "Invalid payload", "error": err.Error()})
			return
		}

		updates := req.updates()
		// updated_at advances on every successful update call, even one that
		// supplies no fields.
		updates["updated_at"] = time.Now().UTC()

		var survey models.Survey
		txErr := db.Transaction(func(tx *gorm.DB) error {
			if err := tx.First(&survey, id).Error; err != nil {
				return err
			}
			if err := tx.Model(&survey).Updates(updates).Error; err != nil {
				return err
			}
			return tx.First(&survey, id).Error
		})
		if txErr != nil {
			if errors.Is(txErr, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"detail": surveyNotFound})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Could not update survey"})
			return
		}

		c.JSON(http.StatusOK, survey)
	}
}

/* ========== DELETE /api/surveys/:id ========== */

func DeleteSurvey(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil || id <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid survey id"})
			return
		}

		txErr := db.Transaction(func(tx *gorm.DB) error {
			var survey models.Survey
			if err := tx.First(&survey, id).Error; err != nil {
				return err
			}
			return tx.Delete(&survey).Error
		})
		if txErr != nil {
			if errors.Is(txErr, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"detail": surveyNotFound})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Could not delete survey"})
			return
		}

		c.Status(http.StatusNoContent)
	}
}
