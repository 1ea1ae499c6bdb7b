package contact

const (
	columns = `id, owner_id, first_name, last_name, email, phone, birthday, additional_data, created_at, updated_at`

	InsertContact = `
		INSERT INTO contacts (owner_id, first_name, last_name, email, phone, birthday, additional_data)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING ` + columns
	SelectContactByID = `
		SELECT ` + columns + `
		FROM contacts
		WHERE id = $1 AND owner_id = $2
	`
	SelectContactByIDForUpdate = SelectContactByID + ` FOR UPDATE`
	UpdateContactByID          = `
		UPDATE contacts
		SET first_name = $1,
		    last_name = $2,
		    email = $3,
		    phone = $4,
		    birthday = $5,
		    additional_data = $6,
		    updated_at = now()
		WHERE id = $7 AND owner_id = $8
		RETURNING ` + columns
	DeleteContactByID = `DELETE FROM contacts WHERE id = $1 AND owner_id = $2`
	SelectContacts    = `
		SELECT ` + columns + `
		FROM contacts
		WHERE owner_id = $1
		  AND ($2::text IS NULL OR first_name ILIKE $2)
		  AND ($3::text IS NULL OR last_name ILIKE $3)
		  AND ($4::text IS NULL OR email ILIKE $4)
		ORDER BY id
		OFFSET $5 LIMIT $6
	`
	SelectAllContacts = `
		SELECT ` + columns + `
		FROM contacts
		WHERE owner_id = $1
		ORDER BY id
	`
	// Held until the transaction ends, so a concurrent check on the same
	// email waits for the first writer to commit or roll back.
	LockEmail         = `SELECT pg_advisory_xact_lock(hashtext($1))`
	SelectEmailExists = `
		SELECT EXISTS (
			SELECT 1 FROM contacts
			WHERE email = $1
			  AND id <> $2
			  AND ($3::bigint IS NULL OR owner_id = $3)
		)
	`
)
