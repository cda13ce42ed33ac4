package jobs

import (
	"context"
	"fmt"
	"log"
	"time"

	"pharmatrack/internal/alerting"
	"pharmatrack/internal/config"
	"pharmatrack/internal/models"
	"pharmatrack/internal/notifier"
	"pharmatrack/internal/repositories"
	"pharmatrack/internal/services"

	"github.com/google/uuid"
)

// ExpiryAlertService runs the daily eligibility sweep: it finds medications,
// prescriptions and stock batches inside their warning windows and dispatches
// one notification per enabled channel, at most once per entity, type and
// calendar day.
type ExpiryAlertService struct {
	medicationRepo   repositories.MedicationRepository
	prescriptionRepo repositories.PrescriptionRepository
	stockRepo        repositories.StockRepository
	productRepo      repositories.ProductRepository
	patientRepo      repositories.PatientRepository
	notificationRepo repositories.NotificationRepository
	settingsSvc      services.SettingsService
	notifier         notifier.Notifier
	admin            config.AdminContact
}

// CheckSummary reports what one sweep did. CheckedDaysAhead is the warning
// window the sweep evaluated against; a merged summary carries the widest one.
type CheckSummary struct {
	CheckedDaysAhead    int            `json:"checkedDaysAhead"`
	EntitiesChecked     int            `json:"entitiesChecked"`
	NotificationsSent   int            `json:"notificationsSent"`
	NotificationsFailed int            `json:"notificationsFailed"`
	SkippedDuplicates   int            `json:"skippedDuplicates"`
	ByType              map[string]int `json:"byType"`
}

func newCheckSummary(daysAhead int) *CheckSummary {
	return &CheckSummary{CheckedDaysAhead: daysAhead, ByType: make(map[string]int)}
}

func (s *CheckSummary) merge(other *CheckSummary) {
	if other.CheckedDaysAhead > s.CheckedDaysAhead {
		s.CheckedDaysAhead = other.CheckedDaysAhead
	}
	s.EntitiesChecked += other.EntitiesChecked
	s.NotificationsSent += other.NotificationsSent
	s.NotificationsFailed += other.NotificationsFailed
	s.SkippedDuplicates += other.SkippedDuplicates
	for typ, count := range other.ByType {
		s.ByType[typ] += count
	}
}

func NewExpiryAlertService(
	medicationRepo repositories.MedicationRepository,
	prescriptionRepo repositories.PrescriptionRepository,
	stockRepo repositories.StockRepository,
	productRepo repositories.ProductRepository,
	patientRepo repositories.PatientRepository,
	notificationRepo repositories.NotificationRepository,
	settingsSvc services.SettingsService,
	n notifier.Notifier,
	admin config.AdminContact,
) *ExpiryAlertService {
	return &ExpiryAlertService{
		medicationRepo:   medicationRepo,
		prescriptionRepo: prescriptionRepo,
		stockRepo:        stockRepo,
		productRepo:      productRepo,
		patientRepo:      patientRepo,
		notificationRepo: notificationRepo,
		settingsSvc:      settingsSvc,
		notifier:         n,
		admin:            admin,
	}
}

// RunMedicationCheck sweeps active courses whose end date lies inside the
// medication warning window. Courses already past their end date are left to
// the prescriber and do not alert.
func (a *ExpiryAlertService) RunMedicationCheck(ctx context.Context) (*CheckSummary, error) {
	settings, err := a.settingsSvc.Get(ctx)
	if err != nil {
		return nil, err
	}

	medications, err := a.medicationRepo.ListActive(ctx)
	if err != nil {
		log.Printf("Failed to list active medications: %v", err)
		return nil, err
	}

	summary := newCheckSummary(settings.MedicationExpiryWarningDays)
	now := time.Now()
	for _, medication := range medications {
		summary.EntitiesChecked++

		days, _, err := alerting.MedicationRemaining(medication, now)
		if err != nil {
			continue // open-ended course, nothing to warn about
		}
		if days < 0 || days > settings.MedicationExpiryWarningDays {
			continue
		}

		patient, err := a.patientRepo.GetByID(ctx, medication.PatientID)
		if err != nil {
			log.Printf("Failed to load patient %s for medication alert: %v", medication.PatientID.String(), err)
			continue
		}

		subject := "Medication ending soon"
		message := fmt.Sprintf("%s, your medication course ends in %d day(s). Contact your pharmacy about a refill.",
			patient.FullName(), days)
		if days == 0 {
			message = fmt.Sprintf("%s, your medication course ends today. Contact your pharmacy about a refill.", patient.FullName())
		}

		a.dispatchForPatient(ctx, summary, settings, models.NotificationMedicationExpiry, medication.ID, patient, subject, message, now)
	}
	return summary, nil
}

// RunPrescriptionCheck sweeps active prescriptions approaching their end date.
// Prescriptions with refills remaining additionally get a renewal prompt.
func (a *ExpiryAlertService) RunPrescriptionCheck(ctx context.Context) (*CheckSummary, error) {
	settings, err := a.settingsSvc.Get(ctx)
	if err != nil {
		return nil, err
	}

	prescriptions, err := a.prescriptionRepo.ListActive(ctx)
	if err != nil {
		log.Printf("Failed to list active prescriptions: %v", err)
		return nil, err
	}

	summary := newCheckSummary(settings.PrescriptionExpiryWarningDays)
	now := time.Now()
	for _, prescription := range prescriptions {
		summary.EntitiesChecked++

		days, _ := alerting.PrescriptionRemaining(prescription, now)
		if days < 0 || days > settings.PrescriptionExpiryWarningDays {
			continue
		}

		patient, err := a.patientRepo.GetByID(ctx, prescription.PatientID)
		if err != nil {
			log.Printf("Failed to load patient %s for prescription alert: %v", prescription.PatientID.String(), err)
			continue
		}

		subject := "Prescription expiring soon"
		message := fmt.Sprintf("%s, prescription %s expires in %d day(s).",
			patient.FullName(), prescription.PrescriptionNumber, days)
		if days == 0 {
			message = fmt.Sprintf("%s, prescription %s expires today.", patient.FullName(), prescription.PrescriptionNumber)
		}

		a.dispatchForPatient(ctx, summary, settings, models.NotificationPrescriptionExpiry, prescription.ID, patient, subject, message, now)

		if prescription.RefillCount > 0 {
			renewalSubject := "Prescription renewal available"
			renewalMessage := fmt.Sprintf("%s, prescription %s has %d refill(s) remaining. Ask your doctor about a renewal before it expires.",
				patient.FullName(), prescription.PrescriptionNumber, prescription.RefillCount)
			a.dispatchForPatient(ctx, summary, settings, models.NotificationPrescriptionRenewal, prescription.ID, patient, renewalSubject, renewalMessage, now)
		}
	}
	return summary, nil
}

// RunStockCheck sweeps the shelf for depleted or expiring batches. Stock alerts
// have no patient, so they address the configured admin contact.
func (a *ExpiryAlertService) RunStockCheck(ctx context.Context) (*CheckSummary, error) {
	settings, err := a.settingsSvc.Get(ctx)
	if err != nil {
		return nil, err
	}

	stocks, err := a.stockRepo.ListAll(ctx)
	if err != nil {
		log.Printf("Failed to list stocks: %v", err)
		return nil, err
	}

	summary := newCheckSummary(settings.StockExpiryWarningDays)
	now := time.Now()
	for _, stock := range stocks {
		summary.EntitiesChecked++

		if stock.ExpiryDate.IsZero() {
			log.Printf("Skipping stock %s without an expiry date", stock.ID.String())
			continue
		}

		productName := stock.ID.String()
		if product, err := a.productRepo.GetByID(ctx, stock.ProductID); err == nil {
			productName = product.Name
		}

		// The expiry window and the quantity level are independent rules,
		// each deduplicated under its own type. A batch that is both low
		// and expiring raises one alert of each kind. The badge precedence
		// the dashboard shows does not apply here.
		days := alerting.DaysUntil(stock.ExpiryDate, now)
		switch alerting.ClassifyWindow(days, alerting.StockThresholds(settings.StockExpiryWarningDays)) {
		case alerting.WindowExpired:
			subject := "Stock batch expired"
			message := fmt.Sprintf("Batch of %s expired on %s and must be removed from the shelf.",
				productName, stock.ExpiryDate.Format("2006-01-02"))
			a.dispatchForAdmin(ctx, summary, settings, models.NotificationStockExpiry, stock.ID, subject, message, now)
		case alerting.WindowCritical, alerting.WindowWarning:
			subject := "Stock batch expiring soon"
			message := fmt.Sprintf("Batch of %s expires in %d day(s) (%s).",
				productName, days, stock.ExpiryDate.Format("2006-01-02"))
			a.dispatchForAdmin(ctx, summary, settings, models.NotificationStockExpiry, stock.ID, subject, message, now)
		}

		if stock.Quantity == 0 {
			subject := "Product out of stock"
			message := fmt.Sprintf("%s is out of stock.", productName)
			a.dispatchForAdmin(ctx, summary, settings, models.NotificationStockLow, stock.ID, subject, message, now)
		} else if stock.MinimumStockLevel != nil && stock.Quantity < *stock.MinimumStockLevel {
			subject := "Product running low"
			message := fmt.Sprintf("%s is down to %d unit(s), below its minimum level of %d.",
				productName, stock.Quantity, *stock.MinimumStockLevel)
			a.dispatchForAdmin(ctx, summary, settings, models.NotificationStockLow, stock.ID, subject, message, now)
		}
	}
	return summary, nil
}

// RunAll executes the three sweeps. A failing sweep does not stop the others;
// its error is logged and the merged summary reflects whatever completed.
func (a *ExpiryAlertService) RunAll(ctx context.Context) *CheckSummary {
	log.Println("Starting scheduled expiry alert sweep")
	total := newCheckSummary(0)

	if summary, err := a.RunMedicationCheck(ctx); err != nil {
		log.Printf("Medication check failed: %v", err)
	} else {
		total.merge(summary)
	}
	if summary, err := a.RunPrescriptionCheck(ctx); err != nil {
		log.Printf("Prescription check failed: %v", err)
	} else {
		total.merge(summary)
	}
	if summary, err := a.RunStockCheck(ctx); err != nil {
		log.Printf("Stock check failed: %v", err)
	} else {
		total.merge(summary)
	}

	log.Printf("Expiry alert sweep completed: %d checked, %d sent, %d failed, %d duplicates skipped",
		total.EntitiesChecked, total.NotificationsSent, total.NotificationsFailed, total.SkippedDuplicates)
	return total
}

// dispatchForPatient fans one alert out to every enabled channel addressed to
// the patient. The per-day duplicate check is keyed on entity and type, so a
// repeated sweep on the same day sends nothing more.
func (a *ExpiryAlertService) dispatchForPatient(ctx context.Context, summary *CheckSummary, settings *models.AlertSettings,
	typ models.NotificationType, entityID uuid.UUID, patient *models.Patient, subject, message string, now time.Time) {

	count, err := a.notificationRepo.CountCreatedOnDay(ctx, entityID, typ, now)
	if err != nil {
		log.Printf("Duplicate check failed for %s %s: %v", typ, entityID.String(), err)
		return
	}
	if count > 0 {
		summary.SkippedDuplicates++
		return
	}

	if settings.EmailNotificationsEnabled && patient.Email != nil && *patient.Email != "" {
		a.send(ctx, summary, typ, models.ChannelEmail, &patient.ID, entityID, *patient.Email, subject, message)
	}
	if settings.SmsNotificationsEnabled && patient.Phone != nil && *patient.Phone != "" {
		a.send(ctx, summary, typ, models.ChannelSMS, &patient.ID, entityID, *patient.Phone, subject, message)
	}
}

func (a *ExpiryAlertService) dispatchForAdmin(ctx context.Context, summary *CheckSummary, settings *models.AlertSettings,
	typ models.NotificationType, entityID uuid.UUID, subject, message string, now time.Time) {

	count, err := a.notificationRepo.CountCreatedOnDay(ctx, entityID, typ, now)
	if err != nil {
		log.Printf("Duplicate check failed for %s %s: %v", typ, entityID.String(), err)
		return
	}
	if count > 0 {
		summary.SkippedDuplicates++
		return
	}

	if settings.EmailNotificationsEnabled && a.admin.Email != "" {
		a.send(ctx, summary, typ, models.ChannelEmail, nil, entityID, a.admin.Email, subject, message)
	}
	if settings.SmsNotificationsEnabled && a.admin.Phone != "" {
		a.send(ctx, summary, typ, models.ChannelSMS, nil, entityID, a.admin.Phone, subject, message)
	}
}

// send records the attempt first, then dispatches. A failed dispatch leaves a
// FAILED row behind so the Notifications page can retry it.
func (a *ExpiryAlertService) send(ctx context.Context, summary *CheckSummary,
	typ models.NotificationType, channel models.NotificationChannel,
	patientID *uuid.UUID, entityID uuid.UUID, recipient, subject, message string) {

	eid := entityID
	notification := &models.Notification{
		ID:        uuid.New(),
		Type:      typ,
		Channel:   channel,
		PatientID: patientID,
		EntityID:  &eid,
		Recipient: recipient,
		Subject:   subject,
		Message:   message,
		Status:    models.NotificationPending,
	}
	if err := a.notificationRepo.Create(ctx, notification); err != nil {
		log.Printf("Failed to record %s notification for %s: %v", typ, entityID.String(), err)
		summary.NotificationsFailed++
		return
	}

	if err := a.notifier.Send(ctx, channel, recipient, subject, message); err != nil {
		reason := err.Error()
		if updateErr := a.notificationRepo.UpdateStatus(ctx, notification.ID, models.NotificationFailed, &reason, nil); updateErr != nil {
			log.Printf("Failed to mark notification %s as failed: %v", notification.ID.String(), updateErr)
		}
		summary.NotificationsFailed++
		summary.ByType[string(typ)]++
		return
	}

	sentAt := time.Now()
	if err := a.notificationRepo.UpdateStatus(ctx, notification.ID, models.NotificationSent, nil, &sentAt); err != nil {
		log.Printf("Failed to mark notification %s as sent: %v", notification.ID.String(), err)
	}
	summary.NotificationsSent++
	summary.ByType[string(typ)]++
}
