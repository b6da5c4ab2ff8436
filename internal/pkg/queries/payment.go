package queries

const paymentColumns = `
			id,
			patient_id,
			session_id,
			package_id,
			amount_paid,
			payment_mode,
			payment_date,
			remaining_amount,
			remarks,
			created_by,
			created_at,
			updated_at`

const (
	InsertPayment = `
		INSERT INTO payments (` + paymentColumns + `
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`

	GetPaymentByID = `
		SELECT` + paymentColumns + `
		FROM payments
		WHERE id = $1
	`

	UpdatePayment = `
		UPDATE payments
		SET
			amount_paid = $2,
			payment_mode = $3,
			payment_date = $4,
			remarks = $5,
			updated_at = $6
		WHERE id = $1
	`

	SumPaidByPatient = `
		SELECT COALESCE(SUM(amount_paid), 0) FROM payments WHERE patient_id = $1
	`

	GetPaymentsByPatient = `
		SELECT` + paymentColumns + `
		FROM payments
		WHERE patient_id = $1
		ORDER BY payment_date DESC, created_at DESC
		LIMIT $2 OFFSET $3
	`

	CountPaymentsByPatient = `
		SELECT COUNT(*) FROM payments WHERE patient_id = $1
	`
)
