package queries

const (
	CountPatientsByStatus = `
		SELECT status, COUNT(*) FROM patients GROUP BY status
	`

	CountDoctors = `
		SELECT COUNT(*) FROM doctors WHERE is_active = TRUE
	`

	CountActivePackages = `
		SELECT COUNT(*) FROM packages WHERE status = 'active'
	`

	CountSessionsBetween = `
		SELECT COUNT(*) FROM sessions WHERE session_date >= $1 AND session_date < $2
	`

	SumRevenue = `
		SELECT COALESCE(SUM(amount_paid), 0) FROM payments
	`

	SumRevenueBetween = `
		SELECT COALESCE(SUM(amount_paid), 0)
		FROM payments
		WHERE payment_date >= $1 AND payment_date < $2
	`

	// Revenue is attributed to the doctor assigned to the package the
	// payment was allocated to.
	GetDoctorStats = `
		SELECT
			d.id,
			d.name,
			COALESCE(s.patient_count, 0),
			COALESCE(s.session_count, 0),
			COALESCE(r.revenue, 0)
		FROM doctors d
		LEFT JOIN (
			SELECT doctor_id, COUNT(DISTINCT patient_id) AS patient_count, COUNT(*) AS session_count
			FROM sessions
			WHERE session_date >= $1 AND session_date < $2 AND doctor_id IS NOT NULL
			GROUP BY doctor_id
		) s ON s.doctor_id = d.id
		LEFT JOIN (
			SELECT pk.assigned_doctor_id AS doctor_id, SUM(p.amount_paid) AS revenue
			FROM payments p
			JOIN packages pk ON pk.id = p.package_id
			WHERE p.payment_date >= $1 AND p.payment_date < $2 AND pk.assigned_doctor_id IS NOT NULL
			GROUP BY pk.assigned_doctor_id
		) r ON r.doctor_id = d.id
		ORDER BY d.name, d.id
	`

	GetRevenueByMode = `
		SELECT payment_mode, COUNT(*), COALESCE(SUM(amount_paid), 0)
		FROM payments
		WHERE payment_date >= $1 AND payment_date < $2
		GROUP BY payment_mode
		ORDER BY payment_mode
	`

	// $1 is the date_trunc unit: day, month or year.
	GetRevenueSeries = `
		SELECT date_trunc($1, payment_date) AS period, COUNT(*), COALESCE(SUM(amount_paid), 0)
		FROM payments
		WHERE payment_date >= $2 AND payment_date < $3
		GROUP BY period
		ORDER BY period
	`

	GetPendingPayments = `
		SELECT
			pt.id,
			pt.name,
			pt.phone,
			due.total_amount,
			COALESCE(paid.paid_amount, 0),
			due.total_amount - COALESCE(paid.paid_amount, 0) AS pending_amount
		FROM patients pt
		JOIN (
			SELECT patient_id, SUM(total_amount) AS total_amount
			FROM packages
			GROUP BY patient_id
		) due ON due.patient_id = pt.id
		LEFT JOIN (
			SELECT patient_id, SUM(amount_paid) AS paid_amount
			FROM payments
			GROUP BY patient_id
		) paid ON paid.patient_id = pt.id
		WHERE due.total_amount - COALESCE(paid.paid_amount, 0) > 0
		ORDER BY pending_amount DESC, pt.name
	`

	// SumTotalDueByPatient is the sum of every package price the patient
	// has been charged, regardless of package status.
	SumTotalDueByPatient = `
		SELECT COALESCE(SUM(total_amount), 0) FROM packages WHERE patient_id = $1
	`
)
