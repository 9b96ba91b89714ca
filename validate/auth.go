package validate

import (
	"event_planner/model"

	"github.com/gofiber/fiber/v2"
)

func SignUp() fiber.Handler {
	return body[model.SignUpInput]("inputSignUp")
}

func SignIn() fiber.Handler {
	return body[model.SignInInput]("inputSignIn")
}

func Recover() fiber.Handler {
	return body[model.RecoverInput]("inputRecover")
}

func ResetPassword() fiber.Handler {
	return body[model.ResetPasswordInput]("inputResetPassword")
}

func UpdateRole() fiber.Handler {
	return body[model.UpdateRoleInput]("inputUpdateRole")
}

func UserFilter() fiber.Handler {
	return query[model.UserFilter]("inputUserFilter")
}
