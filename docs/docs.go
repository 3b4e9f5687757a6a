// Package docs registers the OpenAPI document served under /swagger.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/quizzes/generate": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["quizzes"],
                "summary": "Generate a practice quiz",
                "parameters": [
                    {
                        "description": "topic and question count",
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/quiz.GenerateQuizRequest"}
                    }
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/quiz.QuizResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/config.ErrorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/config.ErrorResponse"}}
                }
            }
        },
        "/quizzes/user/history": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["quizzes"],
                "summary": "List the caller's quizzes without answers",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/quiz.HistoryResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/config.ErrorResponse"}}
                }
            }
        },
        "/quizzes/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["quizzes"],
                "summary": "Get a quiz including answers and explanations",
                "parameters": [
                    {"type": "string", "description": "quiz id", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/quiz.QuizResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/config.ErrorResponse"}}
                }
            }
        },
        "/quizzes/{id}/submit": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["quizzes"],
                "summary": "Submit answers and score a quiz",
                "parameters": [
                    {"type": "string", "description": "quiz id", "name": "id", "in": "path", "required": true},
                    {
                        "description": "answers keyed by question id",
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/quiz.SubmitAnswersRequest"}
                    }
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/quiz.SubmitResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/config.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/config.ErrorResponse"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/config.ErrorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "config.ErrorResponse": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean"},
                "message": {"type": "string"},
                "error": {"type": "string"}
            }
        },
        "quiz.GenerateQuizRequest": {
            "type": "object",
            "required": ["topic", "questionCount"],
            "properties": {
                "topic": {"type": "string"},
                "questionCount": {"type": "integer", "maximum": 20}
            }
        },
        "quiz.SubmitAnswersRequest": {
            "type": "object",
            "required": ["userAnswers"],
            "properties": {
                "userAnswers": {"type": "object", "additionalProperties": {"type": "string"}}
            }
        },
        "quiz.Question": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "question": {"type": "string"},
                "options": {"type": "array", "items": {"type": "string"}},
                "correctAnswer": {"type": "string"},
                "explanation": {"type": "string"}
            }
        },
        "quiz.QuestionView": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "question": {"type": "string"},
                "options": {"type": "array", "items": {"type": "string"}}
            }
        },
        "quiz.Quiz": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "topic": {"type": "string"},
                "requestedQuestionCount": {"type": "integer"},
                "questions": {"type": "array", "items": {"$ref": "#/definitions/quiz.Question"}},
                "userAnswers": {"type": "object", "additionalProperties": {"type": "string"}},
                "score": {"type": "integer"},
                "completed": {"type": "boolean"},
                "owner": {"type": "string"},
                "version": {"type": "integer"},
                "createdAt": {"type": "string"},
                "completedAt": {"type": "string"}
            }
        },
        "quiz.QuizSummary": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "topic": {"type": "string"},
                "requestedQuestionCount": {"type": "integer"},
                "questions": {"type": "array", "items": {"$ref": "#/definitions/quiz.QuestionView"}},
                "userAnswers": {"type": "object", "additionalProperties": {"type": "string"}},
                "score": {"type": "integer"},
                "completed": {"type": "boolean"},
                "owner": {"type": "string"},
                "createdAt": {"type": "string"},
                "completedAt": {"type": "string"}
            }
        },
        "quiz.QuizResponse": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean"},
                "quiz": {"$ref": "#/definitions/quiz.Quiz"}
            }
        },
        "quiz.SubmitResponse": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean"},
                "quiz": {"$ref": "#/definitions/quiz.Quiz"},
                "score": {"type": "integer"},
                "totalQuestions": {"type": "integer"}
            }
        },
        "quiz.HistoryResponse": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean"},
                "quizzes": {"type": "array", "items": {"$ref": "#/definitions/quiz.QuizSummary"}}
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Placement Portal Quiz API",
	Description:      "Practice quiz generation and scoring for the campus placement portal.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
