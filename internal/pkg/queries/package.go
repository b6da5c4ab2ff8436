package queries

const packageColumns = `
			id,
			patient_id,
			assigned_doctor_id,
			visit_type,
			original_amount,
			discount_amount,
			total_amount,
			total_sessions,
			per_session_amount,
			released_sessions,
			used_sessions,
			carry_amount,
			excess_amount,
			status,
			start_date,
			end_date,
			closed_at,
			closed_by,
			close_reason,
			created_at,
			updated_at`

const (
	InsertPackage = `
		INSERT INTO packages (` + packageColumns + `
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21)
	`

	GetPackageByID = `
		SELECT` + packageColumns + `
		FROM packages
		WHERE id = $1
	`

	GetPackageByIDForUpdate = `
		SELECT` + packageColumns + `
		FROM packages
		WHERE id = $1
		FOR UPDATE
	`

	GetActivePackageByPatient = `
		SELECT` + packageColumns + `
		FROM packages
		WHERE patient_id = $1 AND status = 'active'
		ORDER BY start_date DESC
		LIMIT 1
	`

	GetActivePackageByPatientForUpdate = `
		SELECT` + packageColumns + `
		FROM packages
		WHERE patient_id = $1 AND status = 'active'
		ORDER BY start_date DESC
		LIMIT 1
		FOR UPDATE
	`

	GetPackagesByPatient = `
		SELECT` + packageColumns + `
		FROM packages
		WHERE patient_id = $1
		ORDER BY start_date DESC, id
	`

	UpdatePackage = `
		UPDATE packages
		SET
			assigned_doctor_id = $2,
			visit_type = $3,
			original_amount = $4,
			discount_amount = $5,
			total_amount = $6,
			total_sessions = $7,
			per_session_amount = $8,
			released_sessions = $9,
			used_sessions = $10,
			carry_amount = $11,
			excess_amount = $12,
			status = $13,
			end_date = $14,
			closed_at = $15,
			closed_by = $16,
			close_reason = $17,
			updated_at = $18
		WHERE id = $1
	`

	DeletePackage = `
		DELETE FROM packages WHERE id = $1
	`
)
