package queries

const doctorColumns = `
			id,
			name,
			specialization,
			phone,
			is_active,
			created_at,
			updated_at`

const (
	InsertDoctor = `
		INSERT INTO doctors (
			id,
			name,
			specialization,
			phone,
			is_active,
			created_at,
			updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	GetDoctorByID = `
		SELECT` + doctorColumns + `
		FROM doctors
		WHERE id = $1
	`

	GetDoctors = `
		SELECT` + doctorColumns + `
		FROM doctors
		WHERE ($1 = FALSE OR is_active = TRUE)
		ORDER BY name, id
	`

	UpdateDoctor = `
		UPDATE doctors
		SET
			name = $2,
			specialization = $3,
			phone = $4,
			is_active = $5,
			updated_at = $6
		WHERE id = $1
	`
)
