package mailing

import "fmt"

func ConfirmEmailBody(appURL, fullName, token string) string {
	link := fmt.Sprintf("%s/api/v1/auth/confirm?token=%s", appURL, token)
	return fmt.Sprintf(`<p>Hi %s,</p>
<p>Please confirm your email address to finish setting up your canteen account.</p>
<p><a href="%s">Confirm email</a></p>
<p>If you did not sign up you can ignore this message.</p>`, fullName, link)
}

func InvitationBody(appURL, canteenName, role, token string) string {
	link := fmt.Sprintf("%s/accept-invitation?token=%s", appURL, token)
	return fmt.Sprintf(`<p>You have been invited to join <b>%s</b> as <b>%s</b>.</p>
<p><a href="%s">Accept invitation</a></p>
<p>This link expires in 7 days.</p>`, canteenName, role, link)
}
