package api

const (
	HealthCheckRoute = "/healthz"
	AboutRoute       = "/aboutz"

	UsersParent     = "/api/users"
	RegisterRoute   = UsersParent
	LoginRoute      = UsersParent + "/login"
	ListUsersRoute  = UsersParent
	CurrentMeRoute  = UsersParent + "/me"
	GetUserRoute    = UsersParent + "/{id}/user"
	UpdateUserRoute = UsersParent + "/{id}/update"
	DeleteUserRoute = UsersParent + "/{id}/delete"

	CredentialParent      = "/api/credential"
	CreateCredentialRoute = CredentialParent + "/{user_id}/user"
	ListCredentialsRoute  = CredentialParent + "/{user_id}/user"
	GetCredentialRoute    = CredentialParent + "/{user_id}/user/{credential_id}"
	UpdateCredentialRoute = CredentialParent + "/{user_id}/user/{credential_id}/update"
	DeleteCredentialRoute = CredentialParent + "/{user_id}/user/{credential_id}/delete"
)
