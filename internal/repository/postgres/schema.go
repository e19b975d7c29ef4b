package postgres

var schema = []string{
	`CREATE TABLE IF NOT EXISTS patients (
		id                  UUID PRIMARY KEY,
		nama                TEXT NOT NULL,
		nik                 TEXT NOT NULL DEFAULT '',
		telepon             TEXT NOT NULL DEFAULT '',
		jenis_kelamin       TEXT NOT NULL DEFAULT '',
		alamat              TEXT NOT NULL DEFAULT '',
		layanan             TEXT NOT NULL DEFAULT '',
		spesialisasi_dokter TEXT NOT NULL DEFAULT '',
		dokter              TEXT NOT NULL DEFAULT '',
		tanggal             TEXT NOT NULL DEFAULT '',
		estimated_time      TEXT NOT NULL DEFAULT '',
		status              TEXT NOT NULL DEFAULT 'scheduled',
		queue_status        TEXT NOT NULL DEFAULT '',
		queue_number        INTEGER,
		keluhan             TEXT NOT NULL DEFAULT '',
		booking_source      TEXT NOT NULL DEFAULT '',
		tanggal_daftar      TIMESTAMPTZ,
		updated_at          TIMESTAMPTZ
	)`,
	`CREATE TABLE IF NOT EXISTS doctors (
		id             UUID PRIMARY KEY,
		name           TEXT NOT NULL,
		specialization TEXT NOT NULL,
		status         TEXT NOT NULL DEFAULT '',
		created_at     TIMESTAMPTZ NOT NULL,
		last_updated   TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS schedules (
		id                 UUID PRIMARY KEY,
		doctor_id          UUID NOT NULL,
		doctor_name        TEXT NOT NULL DEFAULT '',
		poly               TEXT NOT NULL,
		days               JSONB NOT NULL DEFAULT '[]',
		shifts             JSONB NOT NULL DEFAULT '[]',
		status             TEXT NOT NULL DEFAULT 'active',
		holiday_reason     TEXT NOT NULL DEFAULT '',
		holiday_start_date TEXT NOT NULL DEFAULT '',
		holiday_end_date   TEXT NOT NULL DEFAULT '',
		created_at         TIMESTAMPTZ NOT NULL,
		last_updated       TIMESTAMPTZ NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_schedules_doctor_id ON schedules (doctor_id)`,
	`CREATE TABLE IF NOT EXISTS follow_up_appointments (
		id               UUID PRIMARY KEY,
		patient_id       UUID NOT NULL,
		patient_name     TEXT NOT NULL DEFAULT '',
		doctor_name      TEXT NOT NULL DEFAULT '',
		appointment_date TEXT NOT NULL,
		appointment_time TEXT NOT NULL,
		notes            TEXT NOT NULL DEFAULT '',
		status           TEXT NOT NULL DEFAULT 'scheduled',
		created_at       TIMESTAMPTZ NOT NULL,
		updated_at       TIMESTAMPTZ
	)`,
	`CREATE TABLE IF NOT EXISTS notifications (
		id          UUID PRIMARY KEY,
		type        TEXT NOT NULL,
		message     TEXT NOT NULL,
		doctor_id   UUID NOT NULL,
		doctor_name TEXT NOT NULL DEFAULT '',
		schedule_id UUID NOT NULL,
		poly        TEXT NOT NULL DEFAULT '',
		read        BOOLEAN NOT NULL DEFAULT FALSE,
		timestamp   TIMESTAMPTZ NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_notifications_timestamp ON notifications (timestamp DESC)`,
	`CREATE TABLE IF NOT EXISTS admins (
		id            UUID PRIMARY KEY,
		email         TEXT NOT NULL UNIQUE,
		name          TEXT NOT NULL DEFAULT '',
		password_hash TEXT NOT NULL,
		created_at    TIMESTAMPTZ NOT NULL,
		updated_at    TIMESTAMPTZ NOT NULL,
		last_login_at TIMESTAMPTZ
	)`,
}
