package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/clearway/freightbill/db/models"
	"github.com/clearway/freightbill/lib/responses"
	"github.com/clearway/freightbill/lib/service"
	"github.com/labstack/echo/v4"
)

// JobController : read surface for jobs and their charges
type JobController struct {
	svc *service.BillingService
}

func NewJobController(svc *service.BillingService) *JobController {
	return &JobController{svc: svc}
}

type JobCharge struct {
	ID          int64  `json:"id"`
	FeeName     string `json:"fee_name"`
	Description string `json:"description,omitempty"`
	Amount      int64  `json:"amount"`
	TaxAmount   int64  `json:"tax_amount"`
	Total       int64  `json:"total"`
}

type Job struct {
	ID         int64       `json:"id"`
	CustomerID int64       `json:"customer_id"`
	Reference  string      `json:"reference,omitempty"`
	Status     string      `json:"status"`
	Charges    []JobCharge `json:"charges"`
	CreatedAt  time.Time   `json:"created_at"`
}

func newJobResponse(job *models.Job) *Job {
	response := &Job{
		ID:         job.ID,
		CustomerID: job.CustomerID,
		Reference:  job.Reference,
		Status:     job.Status,
		CreatedAt:  job.CreatedAt,
	}
	for _, charge := range job.Charges {
		response.Charges = append(response.Charges, JobCharge{
			ID:          charge.ID,
			FeeName:     charge.FeeName,
			Description: charge.Description,
			Amount:      charge.Amount,
			TaxAmount:   charge.TaxAmount,
			Total:       charge.Total,
		})
	}
	return response
}

// GetJob returns a job with its charges.
func (controller *JobController) GetJob(c echo.Context) error {
	jobId, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(responses.BadArgumentsError.HttpStatusCode, responses.BadArgumentsError)
	}

	job, err := controller.svc.FindJob(c.Request().Context(), jobId)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, newJobResponse(job))
}
