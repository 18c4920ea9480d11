package service

import (
	"github.com/clearway/freightbill/db/models"
)

// BillableCharges selects the charges on a job that are worth invoicing.
// Zero and void charges are dropped. A job with nothing left to bill cannot
// be invoiced.
func BillableCharges(job *models.Job) ([]*models.JobCharge, error) {
	billable := make([]*models.JobCharge, 0, len(job.Charges))
	for _, charge := range job.Charges {
		if charge.Amount > 0 {
			billable = append(billable, charge)
		}
	}
	if len(billable) == 0 {
		return nil, &NoBillableChargesError{JobID: job.ID}
	}
	return billable, nil
}
