package user

const (
	columns = `id, email, password_hash, is_verified, avatar_url, created_at`

	SelectUserByID = `
		SELECT ` + columns + `
		FROM users
		WHERE id = $1
	`
	SelectUserByEmail = `
		SELECT ` + columns + `
		FROM users
		WHERE email = $1
	`
	InsertUser = `
		INSERT INTO users (email, password_hash)
		VALUES ($1, $2)
		RETURNING ` + columns
	UpdateAvatarURLByID = `
		UPDATE users
		SET avatar_url = $1
		WHERE id = $2
		RETURNING ` + columns
)
