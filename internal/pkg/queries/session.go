package queries

const sessionColumns = `
			id,
			patient_id,
			doctor_id,
			package_id,
			session_date,
			shift,
			visit_type,
			remarks,
			created_by,
			created_at`

const (
	InsertSession = `
		INSERT INTO sessions (` + sessionColumns + `
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	GetSessionByID = `
		SELECT` + sessionColumns + `
		FROM sessions
		WHERE id = $1
	`

	CountSessionsByPackage = `
		SELECT COUNT(*) FROM sessions WHERE package_id = $1
	`

	GetSessionsByPatient = `
		SELECT` + sessionColumns + `
		FROM sessions
		WHERE patient_id = $1
		ORDER BY session_date DESC, created_at DESC
		LIMIT $2 OFFSET $3
	`

	CountSessionsByPatient = `
		SELECT COUNT(*) FROM sessions WHERE patient_id = $1
	`
)
