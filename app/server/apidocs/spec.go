package apidocs

import (
	"net/http"

	"github.com/getkin/kin-openapi/openapi3"
)

const bearerAuth = "bearerAuth"

var schemas = openapi3.Schemas{
	"LoginRequest": openapi3.NewSchemaRef("", openapi3.NewObjectSchema().
		WithProperty("username", openapi3.NewStringSchema().WithMinLength(1).WithMaxLength(50)).
		WithProperty("password", openapi3.NewStringSchema().WithMinLength(1).WithMaxLength(100)).
		WithRequired([]string{"username", "password"})),
	"SignupRequest": openapi3.NewSchemaRef("", openapi3.NewObjectSchema().
		WithProperty("username", openapi3.NewStringSchema().WithMinLength(1).WithMaxLength(50)).
		WithProperty("password", openapi3.NewStringSchema().WithMinLength(1).WithMaxLength(100)).
		WithProperty("nickname", openapi3.NewStringSchema().WithMinLength(1).WithMaxLength(50)).
		WithRequired([]string{"username", "password", "nickname"})),
	"TokenResponse": openapi3.NewSchemaRef("", openapi3.NewObjectSchema().
		WithProperty("token", openapi3.NewStringSchema())),
	"User": openapi3.NewSchemaRef("", openapi3.NewObjectSchema().
		WithProperty("username", openapi3.NewStringSchema()).
		WithProperty("nickname", openapi3.NewStringSchema()).
		WithProperty("authorities", openapi3.NewArraySchema().WithItems(openapi3.NewStringSchema()))),
	"ErrorMessage": openapi3.NewSchemaRef("", openapi3.NewObjectSchema().
		WithProperty("message", openapi3.NewStringSchema()).
		WithProperty("code", openapi3.NewStringSchema())),
}

// ref 引用 components 中的 schema ，同时带上解析后的值
func ref(name string) *openapi3.SchemaRef {
	return openapi3.NewSchemaRef("#/components/schemas/"+name, schemas[name].Value)
}

func jsonResponse(description string, schema *openapi3.SchemaRef) *openapi3.ResponseRef {
	response := openapi3.NewResponse().WithDescription(description)
	if schema != nil {
		response.Content = openapi3.NewContentWithJSONSchemaRef(schema)
	}
	return &openapi3.ResponseRef{Value: response}
}

func errorResponse(statusCode int) *openapi3.ResponseRef {
	return jsonResponse(http.StatusText(statusCode), ref("ErrorMessage"))
}

func secured() *openapi3.SecurityRequirements {
	return openapi3.NewSecurityRequirements().With(openapi3.NewSecurityRequirement().Authenticate(bearerAuth))
}

// Spec 描述对外提供的 HTTP 接口
func Spec() *openapi3.T {
	doc := &openapi3.T{
		OpenAPI: "3.0.3",
		Info: &openapi3.Info{
			Title:   "JWT Auth Service",
			Version: "1.0.0",
		},
		Components: &openapi3.Components{
			Schemas: schemas,
			SecuritySchemes: openapi3.SecuritySchemes{
				bearerAuth: &openapi3.SecuritySchemeRef{Value: openapi3.NewJWTSecurityScheme()},
			},
		},
	}

	hello := openapi3.NewOperation()
	hello.OperationID = "Hello"
	hello.Summary = "Public diagnostic route"
	hello.Responses = openapi3.NewResponses(
		openapi3.WithStatus(http.StatusOK, jsonResponse("hello", nil)),
	)
	doc.AddOperation("/api/hello", http.MethodGet, hello)

	authenticate := openapi3.NewOperation()
	authenticate.OperationID = "AuthAuthenticate"
	authenticate.Summary = "Exchange credentials for a bearer token"
	authenticate.RequestBody = &openapi3.RequestBodyRef{Value: openapi3.NewRequestBody().WithRequired(true).WithJSONSchemaRef(ref("LoginRequest"))}
	authenticate.Responses = openapi3.NewResponses(
		openapi3.WithStatus(http.StatusOK, jsonResponse("token, also returned in the Authorization header", ref("TokenResponse"))),
		openapi3.WithStatus(http.StatusBadRequest, errorResponse(http.StatusBadRequest)),
		openapi3.WithStatus(http.StatusUnauthorized, errorResponse(http.StatusUnauthorized)),
	)
	doc.AddOperation("/api/authenticate", http.MethodPost, authenticate)

	signup := openapi3.NewOperation()
	signup.OperationID = "AuthSignup"
	signup.Summary = "Register a user with ROLE_USER"
	signup.RequestBody = &openapi3.RequestBodyRef{Value: openapi3.NewRequestBody().WithRequired(true).WithJSONSchemaRef(ref("SignupRequest"))}
	signup.Responses = openapi3.NewResponses(
		openapi3.WithStatus(http.StatusCreated, jsonResponse("created user", ref("User"))),
		openapi3.WithStatus(http.StatusBadRequest, errorResponse(http.StatusBadRequest)),
		openapi3.WithStatus(http.StatusConflict, errorResponse(http.StatusConflict)),
	)
	doc.AddOperation("/api/signup", http.MethodPost, signup)

	self := openapi3.NewOperation()
	self.OperationID = "UserInfoGetSelf"
	self.Summary = "Current user (ROLE_USER or ROLE_ADMIN)"
	self.Security = secured()
	self.Responses = openapi3.NewResponses(
		openapi3.WithStatus(http.StatusOK, jsonResponse("current user", ref("User"))),
		openapi3.WithStatus(http.StatusUnauthorized, errorResponse(http.StatusUnauthorized)),
		openapi3.WithStatus(http.StatusForbidden, errorResponse(http.StatusForbidden)),
		openapi3.WithStatus(http.StatusNotFound, errorResponse(http.StatusNotFound)),
	)
	doc.AddOperation("/api/user", http.MethodGet, self)

	byName := openapi3.NewOperation()
	byName.OperationID = "UserInfoGet"
	byName.Summary = "Any user by username (ROLE_ADMIN)"
	byName.Security = secured()
	byName.Parameters = openapi3.Parameters{
		{Value: openapi3.NewPathParameter("username").WithSchema(openapi3.NewStringSchema())},
	}
	byName.Responses = openapi3.NewResponses(
		openapi3.WithStatus(http.StatusOK, jsonResponse("user, or null when absent", ref("User"))),
		openapi3.WithStatus(http.StatusUnauthorized, errorResponse(http.StatusUnauthorized)),
		openapi3.WithStatus(http.StatusForbidden, errorResponse(http.StatusForbidden)),
	)
	doc.AddOperation("/api/user/{username}", http.MethodGet, byName)

	return doc
}
