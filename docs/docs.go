// Package docs регистрирует описание API для swagger UI (/docs/*).
// Шаблон соответствует аннотациям обработчиков в internal/http/handlers.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "license": {
            "name": "MIT",
            "url": "https://opensource.org/licenses/MIT"
        },
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/catalog": {
            "get": {
                "produces": ["application/json"],
                "tags": ["catalog"],
                "summary": "Каталог услуг и вариантов страницы оплаты",
                "responses": {
                    "200": {"description": "Услуги и варианты", "schema": {"$ref": "#/definitions/response.Response"}}
                }
            }
        },
        "/carts": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["carts"],
                "summary": "Создать корзину",
                "parameters": [
                    {"in": "body", "name": "request", "schema": {"$ref": "#/definitions/create.Request"}}
                ],
                "responses": {
                    "201": {"description": "Корзина создана", "schema": {"$ref": "#/definitions/response.Response"}},
                    "400": {"description": "Неизвестный вариант", "schema": {"$ref": "#/definitions/response.ErrorResponse"}},
                    "429": {"description": "Слишком много запросов", "schema": {"$ref": "#/definitions/response.ErrorResponse"}}
                }
            }
        },
        "/carts/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["carts"],
                "summary": "Сводка корзины",
                "parameters": [
                    {"type": "string", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "Сводка", "schema": {"$ref": "#/definitions/response.Response"}},
                    "404": {"description": "Корзина не найдена", "schema": {"$ref": "#/definitions/response.ErrorResponse"}}
                }
            }
        },
        "/carts/{id}/services/{service}": {
            "put": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["carts"],
                "summary": "Выбрать тариф услуги",
                "parameters": [
                    {"type": "string", "name": "id", "in": "path", "required": true},
                    {"type": "string", "name": "service", "in": "path", "required": true},
                    {"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/tier.Request"}}
                ],
                "responses": {
                    "200": {"description": "Сводка", "schema": {"$ref": "#/definitions/response.Response"}},
                    "400": {"description": "Неизвестная услуга или тариф", "schema": {"$ref": "#/definitions/response.ErrorResponse"}},
                    "404": {"description": "Корзина не найдена", "schema": {"$ref": "#/definitions/response.ErrorResponse"}}
                }
            }
        },
        "/carts/{id}/billing": {
            "put": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["carts"],
                "summary": "Переключить годовую оплату",
                "parameters": [
                    {"type": "string", "name": "id", "in": "path", "required": true},
                    {"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/billing.Request"}}
                ],
                "responses": {
                    "200": {"description": "Сводка", "schema": {"$ref": "#/definitions/response.Response"}},
                    "400": {"description": "Годовая оплата недоступна", "schema": {"$ref": "#/definitions/response.ErrorResponse"}},
                    "404": {"description": "Корзина не найдена", "schema": {"$ref": "#/definitions/response.ErrorResponse"}}
                }
            }
        },
        "/carts/{id}/promo": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["carts"],
                "summary": "Применить промокод",
                "parameters": [
                    {"type": "string", "name": "id", "in": "path", "required": true},
                    {"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/promo.Request"}}
                ],
                "responses": {
                    "200": {"description": "Результат и сводка", "schema": {"$ref": "#/definitions/response.Response"}},
                    "404": {"description": "Корзина не найдена", "schema": {"$ref": "#/definitions/response.ErrorResponse"}}
                }
            }
        },
        "/carts/{id}/orders": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["carts"],
                "summary": "Создать заказ в PayPal",
                "parameters": [
                    {"type": "string", "name": "id", "in": "path", "required": true},
                    {"in": "body", "name": "request", "schema": {"$ref": "#/definitions/order.Request"}}
                ],
                "responses": {
                    "201": {"description": "Заказ создан", "schema": {"$ref": "#/definitions/response.Response"}},
                    "409": {"description": "Корзина изменилась во время создания заказа", "schema": {"$ref": "#/definitions/response.ErrorResponse"}},
                    "422": {"description": "Ошибка валидации", "schema": {"$ref": "#/definitions/response.ErrorResponse"}},
                    "502": {"description": "Ошибка платёжной системы", "schema": {"$ref": "#/definitions/response.ErrorResponse"}}
                }
            }
        },
        "/carts/{id}/capture": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["carts"],
                "summary": "Подтвердить оплату",
                "parameters": [
                    {"type": "string", "name": "id", "in": "path", "required": true},
                    {"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/capture.Request"}}
                ],
                "responses": {
                    "200": {"description": "Сводка для проверки", "schema": {"$ref": "#/definitions/response.Response"}},
                    "409": {"description": "Заказ не создан или не совпадает", "schema": {"$ref": "#/definitions/response.ErrorResponse"}},
                    "502": {"description": "Ошибка платёжной системы", "schema": {"$ref": "#/definitions/response.ErrorResponse"}}
                }
            }
        },
        "/carts/{id}/cancel": {
            "post": {
                "produces": ["application/json"],
                "tags": ["carts"],
                "summary": "Отмена оплаты покупателем",
                "parameters": [
                    {"type": "string", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "Уведомление", "schema": {"$ref": "#/definitions/response.Response"}},
                    "404": {"description": "Корзина не найдена", "schema": {"$ref": "#/definitions/response.ErrorResponse"}}
                }
            }
        },
        "/carts/{id}/fail": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["carts"],
                "summary": "Ошибка окна оплаты",
                "parameters": [
                    {"type": "string", "name": "id", "in": "path", "required": true},
                    {"in": "body", "name": "request", "schema": {"$ref": "#/definitions/fail.Request"}}
                ],
                "responses": {
                    "200": {"description": "Уведомление", "schema": {"$ref": "#/definitions/response.Response"}},
                    "404": {"description": "Корзина не найдена", "schema": {"$ref": "#/definitions/response.ErrorResponse"}}
                }
            }
        },
        "/payments": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["payments"],
                "summary": "Сохранить данные платежа",
                "parameters": [
                    {"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/models.SavePaymentRequest"}}
                ],
                "responses": {
                    "201": {"description": "Платёж сохранён", "schema": {"$ref": "#/definitions/response.Response"}},
                    "422": {"description": "Ошибка валидации", "schema": {"$ref": "#/definitions/response.ErrorResponse"}}
                }
            }
        },
        "/donations": {
            "get": {
                "produces": ["application/json"],
                "tags": ["donations"],
                "summary": "Публичный список доноров",
                "responses": {
                    "200": {"description": "Доноры", "schema": {"$ref": "#/definitions/response.Response"}}
                }
            }
        },
        "/donations/orders": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["donations"],
                "summary": "Создать заказ на пожертвование",
                "parameters": [
                    {"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/donationorder.Request"}}
                ],
                "responses": {
                    "201": {"description": "Заказ создан", "schema": {"$ref": "#/definitions/response.Response"}},
                    "422": {"description": "Некорректная сумма", "schema": {"$ref": "#/definitions/response.ErrorResponse"}},
                    "502": {"description": "Ошибка платёжной системы", "schema": {"$ref": "#/definitions/response.ErrorResponse"}}
                }
            }
        },
        "/donations/capture": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["donations"],
                "summary": "Подтвердить пожертвование",
                "parameters": [
                    {"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/donationcapture.Request"}}
                ],
                "responses": {
                    "200": {"description": "Благодарность", "schema": {"$ref": "#/definitions/response.Response"}},
                    "422": {"description": "Ошибка валидации", "schema": {"$ref": "#/definitions/response.ErrorResponse"}},
                    "502": {"description": "Ошибка платёжной системы", "schema": {"$ref": "#/definitions/response.ErrorResponse"}}
                }
            }
        },
        "/admin/login": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["admin"],
                "summary": "Вход администратора",
                "parameters": [
                    {"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/login.Request"}}
                ],
                "responses": {
                    "200": {"description": "Токен", "schema": {"$ref": "#/definitions/response.Response"}},
                    "401": {"description": "Неверный пароль", "schema": {"$ref": "#/definitions/response.ErrorResponse"}}
                }
            }
        },
        "/admin/donors/export": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["admin"],
                "summary": "Выгрузка доноров",
                "responses": {
                    "200": {"description": "Файл выгрузки"},
                    "401": {"description": "Нет или неверный токен", "schema": {"$ref": "#/definitions/response.ErrorResponse"}},
                    "404": {"description": "Список доноров пуст", "schema": {"$ref": "#/definitions/response.ErrorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "response.Response": {
            "type": "object",
            "properties": {
                "status": {"type": "string"},
                "error": {"type": "string"},
                "field": {"type": "string"},
                "data": {}
            }
        },
        "response.ErrorResponse": {
            "type": "object",
            "properties": {
                "status": {"type": "string"},
                "error": {"type": "string"},
                "field": {"type": "string"},
                "data": {}
            }
        },
        "create.Request": {
            "type": "object",
            "properties": {"variant": {"type": "string", "enum": ["classic", "modern", "update", "complete"]}}
        },
        "tier.Request": {
            "type": "object",
            "required": ["tier"],
            "properties": {"tier": {"type": "string", "enum": ["basic", "pro", "enterprise"]}}
        },
        "billing.Request": {
            "type": "object",
            "required": ["yearly"],
            "properties": {"yearly": {"type": "boolean"}}
        },
        "promo.Request": {
            "type": "object",
            "required": ["code"],
            "properties": {"code": {"type": "string"}}
        },
        "order.Request": {
            "type": "object",
            "properties": {
                "user_id": {"type": "string"},
                "guild_id": {"type": "string"}
            }
        },
        "capture.Request": {
            "type": "object",
            "required": ["order_id"],
            "properties": {"order_id": {"type": "string"}}
        },
        "fail.Request": {
            "type": "object",
            "properties": {"reason": {"type": "string"}}
        },
        "models.SavePaymentRequest": {
            "type": "object",
            "required": ["userId", "guildId", "services", "orderId"],
            "properties": {
                "userId": {"type": "string"},
                "guildId": {"type": "string"},
                "services": {"type": "array", "items": {"type": "string"}},
                "orderId": {"type": "string"}
            }
        },
        "donationorder.Request": {
            "type": "object",
            "required": ["amount"],
            "properties": {"amount": {"type": "number"}}
        },
        "donationcapture.Request": {
            "type": "object",
            "required": ["order_id"],
            "properties": {
                "order_id": {"type": "string"},
                "donor_name": {"type": "string"},
                "donor_email": {"type": "string"},
                "donor_message": {"type": "string"},
                "show_publicly": {"type": "boolean"}
            }
        },
        "login.Request": {
            "type": "object",
            "required": ["password"],
            "properties": {"password": {"type": "string"}}
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "description": "Type \"Bearer\" followed by a space and JWT token.",
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

// SwaggerInfo содержит общие сведения об API.
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "NullTracker Premium API",
	Description:      "Оформление премиум-подписки NullTracker/Hinata и приём пожертвований через PayPal",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
