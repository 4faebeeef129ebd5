package ambassadorValidator

import (
	"strings"

	"learnhub/middleware"
	"learnhub/utils"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

// ApplicationFields is the validated multipart payload of an ambassador
// application (the ID-proof file travels separately in the request).
type ApplicationFields struct {
	CollegeName string
	CollegeCity string
	CollegeID   string
	Year        string
	Branch      string
	Phone       string
	LinkedinURL string
	Motivation  string
	Experience  string
}

func SubmitApplication() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := &ApplicationFields{
			CollegeName: strings.TrimSpace(c.FormValue("collegeName")),
			CollegeCity: strings.TrimSpace(c.FormValue("collegeCity")),
			CollegeID:   strings.TrimSpace(c.FormValue("collegeId")),
			Year:        strings.TrimSpace(c.FormValue("year")),
			Branch:      strings.TrimSpace(c.FormValue("branch")),
			Phone:       strings.TrimSpace(c.FormValue("phone")),
			LinkedinURL: strings.TrimSpace(c.FormValue("linkedinUrl")),
			Motivation:  strings.TrimSpace(c.FormValue("motivation")),
			Experience:  strings.TrimSpace(c.FormValue("experience")),
		}

		// Collect every invalid field so the client can render full feedback
		errors := make(map[string]string)

		if reqData.CollegeName == "" {
			errors["collegeName"] = "College name is required!"
		}
		if reqData.CollegeCity == "" {
			errors["collegeCity"] = "College city is required!"
		}
		if reqData.CollegeID == "" {
			errors["collegeId"] = "College ID number is required!"
		}
		if reqData.Year == "" {
			errors["year"] = "Year of study is required!"
		}
		if reqData.Branch == "" {
			errors["branch"] = "Branch is required!"
		}
		if reqData.Phone == "" {
			errors["phone"] = "Phone number is required!"
		} else if len(reqData.Phone) != 10 {
			errors["phone"] = "Phone number must be 10 digits!"
		}
		if reqData.Motivation == "" {
			errors["motivation"] = "Motivation is required!"
		} else if len(reqData.Motivation) < 20 {
			errors["motivation"] = "Motivation must be at least 20 characters long!"
		}

		// LinkedinURL is optional but must be a valid URL when present
		if reqData.LinkedinURL != "" {
			if err := validate.Var(reqData.LinkedinURL, "url"); err != nil {
				errors["linkedinUrl"] = "Profile URL is invalid!"
			}
		}

		// ID proof upload
		file, err := c.FormFile("idProof")
		if err != nil {
			errors["idProof"] = "ID proof document is required!"
		} else if !utils.IsAllowedIDProofType(file) {
			errors["idProof"] = "ID proof must be a JPEG, PNG, WEBP or PDF file!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedApplication", reqData)
		c.Locals("idProofFile", file)
		return c.Next()
	}
}
