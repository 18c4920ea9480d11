package migrations

import (
	"context"

	"github.com/clearway/freightbill/common"
	"github.com/clearway/freightbill/db/models"
	"github.com/uptrace/bun"
)

/* Since this init will reflect the latest model fields when run on a fresh db
make sure that when you add/remove columns in subsequent migrations
IfNotExists/IfExists is used, otherwise it's going to result in errors.
*/
func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {

		if _, err := db.NewCreateTable().Model((*models.Customer)(nil)).Exec(ctx); err != nil {
			return err
		}
		if _, err := db.NewCreateTable().Model((*models.Job)(nil)).Exec(ctx); err != nil {
			return err
		}
		if _, err := db.NewCreateTable().Model((*models.JobCharge)(nil)).Exec(ctx); err != nil {
			return err
		}
		if _, err := db.NewCreateTable().Model((*models.Invoice)(nil)).Exec(ctx); err != nil {
			return err
		}
		if _, err := db.NewCreateTable().Model((*models.InvoiceLine)(nil)).Exec(ctx); err != nil {
			return err
		}
		if _, err := db.NewCreateTable().Model((*models.Payment)(nil)).Exec(ctx); err != nil {
			return err
		}
		if _, err := db.NewCreateTable().Model((*models.Sequence)(nil)).Exec(ctx); err != nil {
			return err
		}

		// seed the number allocator rows, one per identifier space
		sequences := []models.Sequence{
			{Kind: common.SequenceKindInvoice},
			{Kind: common.SequenceKindPayment},
		}
		if _, err := db.NewInsert().Model(&sequences).Exec(ctx); err != nil {
			return err
		}

		return nil
	}, nil)
}
