// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth provides user tokens and ID generation.

# User Tokens

User tokens use HMAC-SHA256 over the user ID:

	token := auth.GenerateUserToken(userID, salt)
	err := auth.ValidateUserToken(userID, token, salt)

The token is URL-safe base64 encoded without padding. Since it's deterministic,
the same user ID and salt always produce the same token, so tokens are never
stored in the database.

Clients send both values on every authenticated request:

	X-User-ID: 3f1c...
	X-User-Token: q9Zb...

# ID Generation

Random UUIDs for database records:

	id := auth.GenerateID()
*/
package auth
