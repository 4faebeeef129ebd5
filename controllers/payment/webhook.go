package paymentController

import (
	"encoding/json"
	"log"

	ambassadorController "learnhub/controllers/ambassador"
	"learnhub/database"
	"learnhub/middleware"
	"learnhub/models"
	"learnhub/utils"
	paymentValidator "learnhub/validators/payment"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AttributionOutcome classifies what a payment-completed event did
type AttributionOutcome string

const (
	// OutcomeAttributed means a fresh attribution row was written
	OutcomeAttributed AttributionOutcome = "ATTRIBUTED"
	// OutcomeAlreadyAttributed means the payment ref was seen before; the
	// existing row is returned untouched. This is the normal path on
	// webhook redelivery, not a failure.
	OutcomeAlreadyAttributed AttributionOutcome = "ALREADY_ATTRIBUTED"
	// OutcomeUnreferenced means the purchase carried no resolvable code.
	// Most purchases are organic, so this is the default branch.
	OutcomeUnreferenced AttributionOutcome = "UNREFERENCED"
)

// AttributeEnrollment binds a completed payment to the referral code
// presented at checkout, exactly once per payment reference. The unique
// index on attributed_enrollments.payment_ref is the sole source of truth:
// when two redelivered events race, the index rejects the loser and the
// loser re-reads the winner's row. Retrying with the same payment ref is
// always safe.
func AttributeEnrollment(db *gorm.DB, event *paymentValidator.PaymentCompletedEvent) (AttributionOutcome, models.AttributedEnrollment, error) {
	if event.ReferralCode == "" {
		return OutcomeUnreferenced, models.AttributedEnrollment{}, nil
	}

	referral, err := ambassadorController.ResolveReferralCode(db, event.ReferralCode)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return OutcomeUnreferenced, models.AttributedEnrollment{}, nil
		}
		return OutcomeUnreferenced, models.AttributedEnrollment{}, err
	}

	// Fast path for redelivered events
	var existing models.AttributedEnrollment
	if err := db.Where("payment_ref = ?", event.PaymentRef).First(&existing).Error; err == nil {
		return OutcomeAlreadyAttributed, existing, nil
	}

	rawJSON := []byte("{}")
	if event.Raw != nil {
		if encoded, err := json.Marshal(event.Raw); err == nil {
			rawJSON = encoded
		}
	}

	attribution := models.AttributedEnrollment{
		EnrollmentRef:      uuid.NewString(),
		UserID:             referral.UserID,
		ReferralCode:       referral.Code,
		CampaignID:         referral.CampaignID,
		PaymentRef:         event.PaymentRef,
		Amount:             event.Amount,
		Currency:           event.Currency,
		GatewayResponseRaw: rawJSON,
	}

	if err := db.Create(&attribution).Error; err != nil {
		// A concurrent delivery may have won the insert. The unique index
		// decides; re-read before treating this as a storage failure.
		if rerr := db.Where("payment_ref = ?", event.PaymentRef).First(&existing).Error; rerr == nil {
			return OutcomeAlreadyAttributed, existing, nil
		}
		return OutcomeUnreferenced, models.AttributedEnrollment{}, err
	}

	return OutcomeAttributed, attribution, nil
}

// recordCourseEnrollment enrolls the paying student when the event names a
// known user and course. Best-effort storefront glue; a failure here never
// unwinds the attribution.
func recordCourseEnrollment(db *gorm.DB, event *paymentValidator.PaymentCompletedEvent) {
	if event.UserID == 0 || event.CourseSlug == "" {
		return
	}

	var course models.Course
	if err := db.Where("slug = ? AND is_deleted = false", event.CourseSlug).First(&course).Error; err != nil {
		return
	}

	var existing models.Enrollment
	if err := db.Where("user_id = ? AND course_id = ? AND is_deleted = false", event.UserID, course.ID).First(&existing).Error; err == nil {
		return
	}

	enrollment := models.Enrollment{
		UserID:   event.UserID,
		CourseID: course.ID,
		Status:   "ENROLLED",
	}
	if err := db.Create(&enrollment).Error; err != nil {
		log.Printf("Error recording course enrollment for payment %s: %v", event.PaymentRef, err)
	}
}

// PaymentCompletedWebhook consumes the gateway's payment-completed events.
// Delivery is at-least-once; every response except 500 is terminal for the
// sender, and a 500 is always safe to retry with the same payment ref.
func PaymentCompletedWebhook(c *fiber.Ctx) error {
	event, ok := c.Locals("validatedPaymentEvent").(*paymentValidator.PaymentCompletedEvent)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	outcome, attribution, err := AttributeEnrollment(db, event)
	if err != nil {
		log.Printf("Error attributing payment %s: %v", event.PaymentRef, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to process payment event!", nil)
	}

	recordCourseEnrollment(db, event)

	if outcome == OutcomeAttributed {
		go notifyAmbassador(attribution)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Payment event processed!", fiber.Map{
		"outcome":     outcome,
		"attribution": attributionPayload(outcome, attribution),
	})
}

func attributionPayload(outcome AttributionOutcome, attribution models.AttributedEnrollment) interface{} {
	if outcome == OutcomeUnreferenced {
		return nil
	}
	return fiber.Map{
		"enrollmentRef": attribution.EnrollmentRef,
		"ambassadorId":  attribution.UserID,
		"referralCode":  attribution.ReferralCode,
		"paymentRef":    attribution.PaymentRef,
		"amount":        attribution.Amount,
	}
}

// notifyAmbassador fires the best-effort "payment attributed" notifications
func notifyAmbassador(attribution models.AttributedEnrollment) {
	db := database.Database.Db

	var ambassador models.User
	if err := db.Where("id = ?", attribution.UserID).First(&ambassador).Error; err != nil {
		log.Printf("Error loading ambassador %d for notification: %v", attribution.UserID, err)
		return
	}

	courseName := attribution.CampaignID
	var course models.Course
	if err := db.Where("slug = ?", attribution.CampaignID).First(&course).Error; err == nil {
		courseName = course.Title
	}

	utils.SendAttributionEmail(ambassador.Email, ambassador.Name, courseName, attribution.Amount)
	if ambassador.Mobile != "" {
		go utils.SendWhatsappMessage(ambassador.Mobile, "New referral enrollment in "+courseName+" — check your LearnHub dashboard!")
	}
}
