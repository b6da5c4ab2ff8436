package queries

const patientColumns = `
			id,
			name,
			phone,
			gender,
			age,
			address,
			status,
			released_sessions,
			carry_amount,
			created_at,
			updated_at`

const (
	InsertPatient = `
		INSERT INTO patients (
			id,
			name,
			phone,
			gender,
			age,
			address,
			status,
			released_sessions,
			carry_amount,
			created_at,
			updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	GetPatientByID = `
		SELECT` + patientColumns + `
		FROM patients
		WHERE id = $1
	`

	GetPatientByIDForUpdate = `
		SELECT` + patientColumns + `
		FROM patients
		WHERE id = $1
		FOR UPDATE
	`

	UpdatePatient = `
		UPDATE patients
		SET
			name = $2,
			phone = $3,
			gender = $4,
			age = $5,
			address = $6,
			updated_at = $7
		WHERE id = $1
	`

	UpdatePatientStatus = `
		UPDATE patients
		SET status = $2, updated_at = NOW()
		WHERE id = $1
	`

	UpdatePatientLedgerFields = `
		UPDATE patients
		SET released_sessions = $2, carry_amount = $3, updated_at = NOW()
		WHERE id = $1
	`

	// $1 is an optional status filter; an empty string matches every status.
	GetPatients = `
		SELECT` + patientColumns + `
		FROM patients
		WHERE ($1 = '' OR status = $1)
		ORDER BY created_at DESC, id
		LIMIT $2 OFFSET $3
	`

	CountPatients = `
		SELECT COUNT(*)
		FROM patients
		WHERE ($1 = '' OR status = $1)
	`

	GetPatientIDs = `
		SELECT id FROM patients ORDER BY id
	`
)
