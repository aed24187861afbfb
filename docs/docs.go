// Package docs is generated by swaggo/swag from the handler annotations.
// Regenerate with: swag init -g cmd/server/main.go -o docs
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
        "/cases": {
            "get": {
                "description": "Default order is priority, newest first within a priority. Supports weak ETag via If-None-Match.",
                "produces": ["application/json"],
                "tags": ["Cases"],
                "summary": "Query support cases",
                "operationId": "listCases",
                "parameters": [
                    {"type": "string", "description": "Return 304 if ETag matches", "name": "If-None-Match", "in": "header"},
                    {"type": "string", "description": "Search title, case number, description or linked order", "name": "q", "in": "query"},
                    {"type": "string", "description": "Case status or All", "name": "status", "in": "query"},
                    {"type": "string", "description": "Case type or All", "name": "type", "in": "query"},
                    {"type": "string", "description": "Low, Medium, High, Urgent or All", "name": "priority", "in": "query"},
                    {"type": "string", "description": "Assignee", "name": "assigned_to", "in": "query"},
                    {"minimum": 1, "type": "integer", "description": "Opened in the last N days", "name": "days", "in": "query"},
                    {"type": "string", "description": "priority, newest, recent or a field", "name": "sort", "in": "query"},
                    {"minimum": 1, "type": "integer", "default": 1, "description": "Page number", "name": "page", "in": "query"},
                    {"maximum": 100, "minimum": 1, "type": "integer", "default": 20, "description": "Items per page", "name": "page_size", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handlers.CasePage"}, "headers": {"ETag": {"type": "string", "description": "Weak ETag for the case list"}}},
                    "304": {"description": "Not Modified", "schema": {"type": "string"}},
                    "400": {"description": "Invalid query", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            },
            "post": {
                "description": "New cases are always Open and get the next case number.\nA repeated Idempotency-Key returns the case created the first time.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Cases"],
                "summary": "Open a support case",
                "operationId": "createCase",
                "parameters": [
                    {"type": "string", "description": "User ID (demo header)", "name": "X-User-ID", "in": "header"},
                    {"type": "string", "description": "Safe retry key", "name": "Idempotency-Key", "in": "header"},
                    {"description": "New case", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.CreateCaseRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/domain.SupportCase"}},
                    "400": {"description": "Bad request", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "422": {"description": "Validation failed", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        },
        "/cases/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Cases"],
                "summary": "Get a support case",
                "operationId": "getCase",
                "parameters": [{"type": "string", "example": "CASE-00001", "description": "Case id or case number", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.SupportCase"}},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        },
        "/cases/{id}/status": {
            "post": {
                "description": "Only workflow edges are accepted; the current status is a no-op.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Cases"],
                "summary": "Change case status",
                "operationId": "transitionCase",
                "parameters": [
                    {"type": "string", "description": "Case id or case number", "name": "id", "in": "path", "required": true},
                    {"description": "Target status", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.TransitionRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.SupportCase"}},
                    "400": {"description": "Unknown status", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "409": {"description": "Transition not allowed", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        },
        "/cases/{id}/assign": {
            "post": {
                "description": "An empty assignee unassigns the case.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Cases"],
                "summary": "Assign a case",
                "operationId": "assignCase",
                "parameters": [
                    {"type": "string", "description": "Case id or case number", "name": "id", "in": "path", "required": true},
                    {"description": "Assignee", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.AssignRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.SupportCase"}},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        },
        "/cases/{id}/messages": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Cases"],
                "summary": "Case thread",
                "operationId": "listCaseMessages",
                "parameters": [{"type": "string", "description": "Case id or case number", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/domain.CaseMessage"}}},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Cases"],
                "summary": "Reply on a case",
                "operationId": "addCaseMessage",
                "parameters": [
                    {"type": "string", "description": "User ID (demo header)", "name": "X-User-ID", "in": "header"},
                    {"type": "string", "description": "Case id or case number", "name": "id", "in": "path", "required": true},
                    {"description": "Message", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.CaseMessageRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/domain.CaseMessage"}},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "422": {"description": "Empty or too long", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        },
        "/cases/{id}/attachments": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Cases"],
                "summary": "Case attachments",
                "operationId": "listCaseAttachments",
                "parameters": [{"type": "string", "description": "Case id or case number", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/domain.CaseAttachment"}}},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Cases"],
                "summary": "Attach a file to a case",
                "operationId": "addCaseAttachment",
                "parameters": [
                    {"type": "string", "description": "Case id or case number", "name": "id", "in": "path", "required": true},
                    {"description": "Attachment metadata", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.AttachmentRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/domain.CaseAttachment"}},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "422": {"description": "Validation failed", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        },
        "/conversations": {
            "get": {
                "description": "Default order is most recent message first. Supports weak ETag via If-None-Match.",
                "produces": ["application/json"],
                "tags": ["Conversations"],
                "summary": "Query conversations",
                "operationId": "listConversations",
                "parameters": [
                    {"type": "string", "description": "Return 304 if ETag matches", "name": "If-None-Match", "in": "header"},
                    {"type": "string", "description": "Search participants, last message, request id or subject", "name": "q", "in": "query"},
                    {"type": "string", "description": "Request, Support, System or All", "name": "type", "in": "query"},
                    {"type": "string", "description": "Low, Medium, High, Urgent or All", "name": "priority", "in": "query"},
                    {"type": "string", "description": "Request status or All", "name": "request_status", "in": "query"},
                    {"type": "boolean", "description": "Only conversations with unread messages", "name": "unread", "in": "query"},
                    {"type": "string", "description": "recent, priority or a field", "name": "sort", "in": "query"},
                    {"minimum": 1, "type": "integer", "default": 1, "description": "Page number", "name": "page", "in": "query"},
                    {"maximum": 100, "minimum": 1, "type": "integer", "default": 20, "description": "Items per page", "name": "page_size", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handlers.ConversationPage"}, "headers": {"ETag": {"type": "string", "description": "Weak ETag for the inbox state"}}},
                    "304": {"description": "Not Modified", "schema": {"type": "string"}},
                    "400": {"description": "Invalid query", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        },
        "/conversations/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Conversations"],
                "summary": "Get a conversation",
                "operationId": "getConversation",
                "parameters": [{"type": "string", "description": "Conversation id", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.Conversation"}},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        },
        "/conversations/{id}/messages": {
            "get": {
                "description": "Oldest first. An empty conversation returns an empty array.",
                "produces": ["application/json"],
                "tags": ["Conversations"],
                "summary": "Messages of a conversation",
                "operationId": "listConversationMessages",
                "parameters": [{"type": "string", "description": "Conversation id", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/domain.Message"}}},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            },
            "post": {
                "description": "Appends a message from the current user and updates the conversation preview.\nA repeated Idempotency-Key returns the message created the first time.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Conversations"],
                "summary": "Send a message",
                "operationId": "sendMessage",
                "parameters": [
                    {"type": "string", "description": "User ID (demo header)", "name": "X-User-ID", "in": "header"},
                    {"type": "string", "description": "Safe retry key", "name": "Idempotency-Key", "in": "header"},
                    {"type": "string", "description": "Conversation id", "name": "id", "in": "path", "required": true},
                    {"description": "Message", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.SendMessageRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/domain.Message"}},
                    "400": {"description": "Bad request", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "422": {"description": "Empty or too long", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        },
        "/conversations/{id}/read": {
            "post": {
                "description": "Zeroes the unread counter. Repeating the call changes nothing.",
                "produces": ["application/json"],
                "tags": ["Conversations"],
                "summary": "Mark a conversation read",
                "operationId": "markConversationRead",
                "parameters": [{"type": "string", "description": "Conversation id", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.Conversation"}},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        },
        "/ideas": {
            "get": {
                "description": "Sorts by demand (default), competition, time_to_market or margin.",
                "produces": ["application/json"],
                "tags": ["Ideas"],
                "summary": "Query product ideas",
                "operationId": "listIdeas",
                "parameters": [
                    {"type": "string", "description": "Search title, category, description or tags", "name": "q", "in": "query"},
                    {"type": "string", "description": "Category or All", "name": "category", "in": "query"},
                    {"type": "string", "description": "Low, Medium, High or All", "name": "competition", "in": "query"},
                    {"type": "string", "description": "demand, competition, time_to_market, margin", "name": "sort", "in": "query"},
                    {"minimum": 1, "type": "integer", "default": 1, "description": "Page number", "name": "page", "in": "query"},
                    {"maximum": 100, "minimum": 1, "type": "integer", "default": 20, "description": "Items per page", "name": "page_size", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handlers.IdeaPage"}},
                    "400": {"description": "Invalid query", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "500": {"description": "Internal error", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        },
        "/payouts": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Payouts"],
                "summary": "Query payout transactions",
                "operationId": "listPayouts",
                "parameters": [
                    {"type": "string", "description": "Search id, reference or method", "name": "q", "in": "query"},
                    {"type": "string", "description": "Pending, Processing, Completed, Failed or All", "name": "status", "in": "query"},
                    {"minimum": 1, "type": "integer", "description": "Only the last N days", "name": "days", "in": "query"},
                    {"type": "string", "description": "newest, oldest, amount_desc, amount_asc", "name": "sort", "in": "query"},
                    {"minimum": 1, "type": "integer", "default": 1, "description": "Page number", "name": "page", "in": "query"},
                    {"maximum": 100, "minimum": 1, "type": "integer", "default": 20, "description": "Items per page", "name": "page_size", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handlers.PayoutPage"}},
                    "400": {"description": "Invalid query", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        },
        "/payouts/method": {
            "get": {
                "description": "Designers without a saved method get the account default; sellers get 404.",
                "produces": ["application/json"],
                "tags": ["Payouts"],
                "summary": "Current payout method",
                "operationId": "getPayoutMethod",
                "parameters": [
                    {"type": "string", "description": "User ID (demo header)", "name": "X-User-ID", "in": "header"},
                    {"type": "string", "default": "designer", "description": "designer or seller", "name": "role", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.PayoutMethod"}},
                    "400": {"description": "Unknown role", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "404": {"description": "No method saved", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        },
        "/payouts/method/designer": {
            "put": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Payouts"],
                "summary": "Update the designer payout method",
                "operationId": "updateDesignerMethod",
                "parameters": [
                    {"type": "string", "description": "User ID (demo header)", "name": "X-User-ID", "in": "header"},
                    {"description": "Designer payout form", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/services.DesignerMethodInput"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/services.Result"}},
                    "422": {"description": "Missing fields", "schema": {"$ref": "#/definitions/services.Result"}},
                    "503": {"description": "Simulated backend failure", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        },
        "/payouts/method/seller": {
            "put": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Payouts"],
                "summary": "Update the seller payout method",
                "operationId": "updateSellerMethod",
                "parameters": [
                    {"type": "string", "description": "User ID (demo header)", "name": "X-User-ID", "in": "header"},
                    {"description": "Seller payout form", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/services.SellerMethodInput"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/services.Result"}},
                    "422": {"description": "Missing fields", "schema": {"$ref": "#/definitions/services.Result"}},
                    "503": {"description": "Simulated backend failure", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        },
        "/payouts/next": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Payouts"],
                "summary": "Next scheduled payout",
                "operationId": "nextPayout",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handlers.NextPayoutResponse"}},
                    "500": {"description": "Bad schedule", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        },
        "/profile": {
            "get": {
                "description": "Users who never saved get the default profile.",
                "produces": ["application/json"],
                "tags": ["Profile"],
                "summary": "Maker profile",
                "operationId": "getProfile",
                "parameters": [{"type": "string", "description": "User ID (demo header)", "name": "X-User-ID", "in": "header"}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.ProfileData"}},
                    "503": {"description": "Simulated backend failure", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            },
            "put": {
                "description": "The profile is validated against the profile schema before it is stored.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Profile"],
                "summary": "Save the maker profile",
                "operationId": "saveProfile",
                "parameters": [
                    {"type": "string", "description": "User ID (demo header)", "name": "X-User-ID", "in": "header"},
                    {"description": "Full profile", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/domain.ProfileData"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handlers.ProfileResponse"}},
                    "400": {"description": "Bad request", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "422": {"description": "Invalid fields", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "503": {"description": "Simulated backend failure", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        },
        "/royalties": {
            "get": {
                "description": "Filters, sorts and paginates the royalty ledger.",
                "produces": ["application/json"],
                "tags": ["Royalties"],
                "summary": "Query royalty transactions",
                "operationId": "listRoyalties",
                "parameters": [
                    {"type": "string", "description": "Search design, design id, id or source", "name": "q", "in": "query"},
                    {"type": "string", "description": "Pending, Available, Paid or All", "name": "status", "in": "query"},
                    {"type": "string", "description": "Sales channel", "name": "source", "in": "query"},
                    {"minimum": 1, "type": "integer", "description": "Only the last N days", "name": "days", "in": "query"},
                    {"type": "string", "description": "newest, oldest, amount_desc, amount_asc or a field", "name": "sort", "in": "query"},
                    {"type": "string", "description": "asc or desc for field sorts", "name": "order", "in": "query"},
                    {"minimum": 1, "type": "integer", "default": 1, "description": "Page number", "name": "page", "in": "query"},
                    {"maximum": 100, "minimum": 1, "type": "integer", "default": 20, "description": "Items per page", "name": "page_size", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handlers.RoyaltyPage"}},
                    "400": {"description": "Invalid query", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "500": {"description": "Internal error", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        },
        "/royalties/summary": {
            "get": {
                "description": "Sums amounts per status inside a day window (0 means all time).",
                "produces": ["application/json"],
                "tags": ["Royalties"],
                "summary": "Royalty totals",
                "operationId": "royaltySummary",
                "parameters": [{"minimum": 0, "type": "integer", "default": 30, "description": "Window in days", "name": "days", "in": "query"}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/services.Summary"}},
                    "500": {"description": "Internal error", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        },
        "/royalties/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Royalties"],
                "summary": "Get a royalty transaction",
                "operationId": "getRoyalty",
                "parameters": [{"type": "string", "example": "RT-0001", "description": "Transaction id", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.RoyaltyTransaction"}},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        },
        "/support/articles": {
            "get": {
                "description": "Best matching help articles for a draft case title or question.",
                "produces": ["application/json"],
                "tags": ["Support"],
                "summary": "Help-center suggestions",
                "operationId": "suggestArticles",
                "parameters": [
                    {"type": "string", "description": "Question or case title", "name": "q", "in": "query", "required": true},
                    {"maximum": 10, "minimum": 1, "type": "integer", "default": 3, "description": "Max results", "name": "k", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/search.Result"}}}
                }
            }
        }
    },
    "definitions": {
        "domain.Address": {
            "type": "object",
            "properties": {
                "city": {"type": "string"}, "country": {"type": "string"}, "line1": {"type": "string"},
                "line2": {"type": "string"}, "postal_code": {"type": "string"}, "state": {"type": "string"}
            }
        },
        "domain.CaseAttachment": {
            "type": "object",
            "properties": {
                "case_id": {"type": "string"}, "created_at": {"type": "string"}, "id": {"type": "string"},
                "name": {"type": "string"}, "size_bytes": {"type": "integer"}, "type": {"type": "string"}
            }
        },
        "domain.CaseMessage": {
            "type": "object",
            "properties": {
                "author": {"type": "string"}, "case_id": {"type": "string"}, "created_at": {"type": "string"},
                "id": {"type": "string"}, "internal": {"type": "boolean"}, "message": {"type": "string"}
            }
        },
        "domain.Conversation": {
            "type": "object",
            "properties": {
                "created_at": {"type": "string"}, "id": {"type": "string"},
                "last_message": {"$ref": "#/definitions/domain.LastMessage"},
                "participants": {"type": "array", "items": {"$ref": "#/definitions/domain.Participant"}},
                "priority": {"type": "string"}, "request_id": {"type": "string"}, "request_status": {"type": "string"},
                "subject": {"type": "string"}, "type": {"type": "string"}, "unread_count": {"type": "integer"},
                "updated_at": {"type": "string"}
            }
        },
        "domain.LastMessage": {
            "type": "object",
            "properties": {"content": {"type": "string"}, "sender_id": {"type": "string"}, "timestamp": {"type": "string"}}
        },
        "domain.Location": {
            "type": "object",
            "properties": {"city": {"type": "string"}, "country": {"type": "string"}}
        },
        "domain.Machine": {
            "type": "object",
            "properties": {"build_volume": {"type": "string"}, "name": {"type": "string"}, "type": {"type": "string"}}
        },
        "domain.Message": {
            "type": "object",
            "properties": {
                "attachments": {"type": "array", "items": {"type": "string"}}, "content": {"type": "string"},
                "conversation_id": {"type": "string"}, "id": {"type": "string"}, "sender_id": {"type": "string"},
                "timestamp": {"type": "string"}
            }
        },
        "domain.Participant": {
            "type": "object",
            "properties": {"id": {"type": "string"}, "name": {"type": "string"}, "role": {"type": "string"}}
        },
        "domain.PayoutMethod": {
            "type": "object",
            "properties": {
                "account_holder": {"type": "string"}, "address": {"$ref": "#/definitions/domain.Address"},
                "masked": {"type": "string"}, "role": {"type": "string"}, "type": {"type": "string"},
                "updated_at": {"type": "string"}
            }
        },
        "domain.PayoutTransaction": {
            "type": "object",
            "properties": {
                "amount": {"type": "number"}, "date": {"type": "string"}, "id": {"type": "string"},
                "method": {"type": "string"}, "reference": {"type": "string"}, "status": {"type": "string"}
            }
        },
        "domain.ProductIdea": {
            "type": "object",
            "properties": {
                "category": {"type": "string"}, "competition": {"type": "string"}, "demand_score": {"type": "integer"},
                "description": {"type": "string"}, "id": {"type": "string"}, "margin": {"type": "string"},
                "tags": {"type": "array", "items": {"type": "string"}}, "time_to_market": {"type": "string"},
                "title": {"type": "string"}
            }
        },
        "domain.ProfileData": {
            "type": "object",
            "properties": {
                "accepts_custom": {"type": "boolean"}, "bio": {"type": "string"}, "display_name": {"type": "string"},
                "lead_time_days": {"type": "integer"}, "location": {"$ref": "#/definitions/domain.Location"},
                "machines": {"type": "array", "items": {"$ref": "#/definitions/domain.Machine"}},
                "materials": {"type": "array", "items": {"type": "string"}}, "monthly_units": {"type": "integer"},
                "shipping_zones": {"type": "array", "items": {"$ref": "#/definitions/domain.ShippingZone"}}
            }
        },
        "domain.RoyaltyTransaction": {
            "type": "object",
            "properties": {
                "amount": {"type": "number"}, "date": {"type": "string"}, "design": {"type": "string"},
                "design_id": {"type": "string"}, "id": {"type": "string"}, "qty": {"type": "integer"},
                "rate": {"type": "number"}, "source": {"type": "string"}, "status": {"type": "string"}
            }
        },
        "domain.ShippingZone": {
            "type": "object",
            "properties": {"base_cost": {"type": "number"}, "days": {"type": "integer"}, "region": {"type": "string"}}
        },
        "domain.SupportCase": {
            "type": "object",
            "properties": {
                "assigned_to": {"type": "string"}, "case_id": {"type": "string"}, "created_at": {"type": "string"},
                "created_by": {"type": "string"}, "description": {"type": "string"}, "id": {"type": "string"},
                "linked_to": {"type": "string"}, "priority": {"type": "string"}, "status": {"type": "string"},
                "title": {"type": "string"}, "type": {"type": "string"}, "updated_at": {"type": "string"}
            }
        },
        "handlers.AssignRequest": {
            "type": "object",
            "properties": {"assigned_to": {"type": "string", "example": "agent-4"}}
        },
        "handlers.AttachmentRequest": {
            "type": "object",
            "required": ["name"],
            "properties": {
                "name": {"type": "string", "example": "photo.jpg"},
                "size_bytes": {"type": "integer", "example": 48213},
                "type": {"type": "string", "example": "image/jpeg"}
            }
        },
        "handlers.CaseMessageRequest": {
            "type": "object",
            "properties": {
                "internal": {"type": "boolean"},
                "message": {"type": "string", "example": "We have shipped a replacement."}
            }
        },
        "handlers.CasePage": {
            "type": "object",
            "properties": {
                "has_next": {"type": "boolean"},
                "items": {"type": "array", "items": {"$ref": "#/definitions/domain.SupportCase"}},
                "page": {"type": "integer"}, "page_size": {"type": "integer"},
                "total": {"type": "integer"}, "total_pages": {"type": "integer"}
            }
        },
        "handlers.ConversationPage": {
            "type": "object",
            "properties": {
                "has_next": {"type": "boolean"},
                "items": {"type": "array", "items": {"$ref": "#/definitions/domain.Conversation"}},
                "page": {"type": "integer"}, "page_size": {"type": "integer"},
                "total": {"type": "integer"}, "total_pages": {"type": "integer"}
            }
        },
        "handlers.CreateCaseRequest": {
            "type": "object",
            "required": ["title"],
            "properties": {
                "assigned_to": {"type": "string"},
                "description": {"type": "string", "example": "Order ORD-10293 arrived with a cracked handle."},
                "linked_to": {"type": "string", "example": "ORD-10293"},
                "priority": {"type": "string", "example": "High"},
                "title": {"type": "string", "example": "Mug arrived cracked"},
                "type": {"type": "string", "example": "Quality"}
            }
        },
        "handlers.ErrorResponse": {
            "type": "object",
            "properties": {
                "code": {"description": "Stable, machine-readable code (see errors.go)", "type": "string", "example": "not_found"},
                "message": {"description": "Human-readable message", "type": "string", "example": "case not found"},
                "request_id": {"description": "Correlates server logs and client errors", "type": "string", "example": "123e4567-e89b-12d3-a456-426614174000"}
            }
        },
        "handlers.IdeaPage": {
            "type": "object",
            "properties": {
                "has_next": {"type": "boolean"},
                "items": {"type": "array", "items": {"$ref": "#/definitions/domain.ProductIdea"}},
                "page": {"type": "integer"}, "page_size": {"type": "integer"},
                "total": {"type": "integer"}, "total_pages": {"type": "integer"}
            }
        },
        "handlers.NextPayoutResponse": {
            "type": "object",
            "properties": {"next_payout_at": {"type": "string", "example": "2025-04-01T09:00:00Z"}}
        },
        "handlers.PayoutPage": {
            "type": "object",
            "properties": {
                "has_next": {"type": "boolean"},
                "items": {"type": "array", "items": {"$ref": "#/definitions/domain.PayoutTransaction"}},
                "page": {"type": "integer"}, "page_size": {"type": "integer"},
                "total": {"type": "integer"}, "total_pages": {"type": "integer"}
            }
        },
        "handlers.ProfileResponse": {
            "type": "object",
            "properties": {
                "notice": {"$ref": "#/definitions/services.Notice"},
                "profile": {"$ref": "#/definitions/domain.ProfileData"}
            }
        },
        "handlers.RoyaltyPage": {
            "type": "object",
            "properties": {
                "has_next": {"type": "boolean"},
                "items": {"type": "array", "items": {"$ref": "#/definitions/domain.RoyaltyTransaction"}},
                "page": {"type": "integer"}, "page_size": {"type": "integer"},
                "total": {"type": "integer"}, "total_pages": {"type": "integer"}
            }
        },
        "handlers.SendMessageRequest": {
            "type": "object",
            "properties": {
                "attachments": {"type": "array", "items": {"type": "string"}, "example": ["tracking.pdf"]},
                "content": {"type": "string", "example": "The replacement print shipped today."}
            }
        },
        "handlers.TransitionRequest": {
            "type": "object",
            "required": ["status"],
            "properties": {"status": {"type": "string", "example": "In Progress"}}
        },
        "search.Result": {
            "type": "object",
            "properties": {"article": {"type": "string"}, "score": {"type": "number"}, "snippet": {"type": "string"}}
        },
        "services.DesignerMethodInput": {
            "type": "object",
            "properties": {"accountDetails": {"type": "string"}, "accountHolder": {"type": "string"}, "type": {"type": "string"}}
        },
        "services.Notice": {
            "type": "object",
            "properties": {"dismiss_after_ms": {"type": "integer"}, "level": {"type": "string"}, "message": {"type": "string"}}
        },
        "services.Result": {
            "type": "object",
            "properties": {"masked": {"type": "string"}, "message": {"type": "string"}, "success": {"type": "boolean"}}
        },
        "services.SellerMethodInput": {
            "type": "object",
            "properties": {
                "accountNumber": {"type": "string"}, "city": {"type": "string"}, "country": {"type": "string"},
                "line1": {"type": "string"}, "line2": {"type": "string"}, "payoutType": {"type": "string"},
                "postalCode": {"type": "string"}, "state": {"type": "string"}
            }
        },
        "services.Summary": {
            "type": "object",
            "properties": {
                "available": {"type": "number"}, "count": {"type": "integer"}, "paid": {"type": "number"},
                "pending": {"type": "number"}, "total": {"type": "number"}, "units": {"type": "integer"},
                "window_days": {"type": "integer"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "Marketplace Dashboard API",
	Description:      "Royalties, payouts, product ideas, inbox, support cases and maker profiles for a 3D-printing marketplace dashboard.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
