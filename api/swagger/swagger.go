package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "GuardWise API",
        "description": "Security guard patrol management admin console",
        "version": "1.0.0"
    },
    "basePath": "/api/v1",
    "schemes": [
        "http"
    ],
    "securityDefinitions": {
        "BearerAuth": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    },
    "tags": [
        {"name": "Auth", "description": "Admin authentication"},
        {"name": "Dashboard", "description": "Aggregated operations snapshot"},
        {"name": "Guards", "description": "Guard directory"},
        {"name": "Zones", "description": "Zones and coverage areas"},
        {"name": "Checkpoints", "description": "Checkpoints, QR and NFC configuration"},
        {"name": "Schedules", "description": "Patrol scheduling and conflict validation"},
        {"name": "Availability", "description": "Guard leave and weekly-off records"},
        {"name": "Rosters", "description": "Recurring weekly-off rosters"},
        {"name": "Patrols", "description": "Patrol history and trends"},
        {"name": "Reports", "description": "Exports and report views"},
        {"name": "Audit", "description": "Admin audit trail"},
        {"name": "Display", "description": "Public checkpoint QR displays"}
    ],
    "paths": {
        "/auth/login": {
            "post": {
                "tags": ["Auth"],
                "summary": "Authenticate an admin and issue an access token",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/LoginRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "401": {"description": "Invalid credentials"}
                }
            }
        },
        "/auth/me": {
            "get": {
                "tags": ["Auth"],
                "summary": "Return the authenticated admin profile",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/dashboard": {
            "get": {
                "tags": ["Dashboard"],
                "summary": "Aggregated dashboard statistics",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/guards": {
            "get": {
                "tags": ["Guards"],
                "summary": "List guards",
                "parameters": [
                    {"name": "status", "in": "query", "type": "string", "enum": ["active", "on-duty", "inactive"]},
                    {"name": "zone", "in": "query", "type": "string"},
                    {"name": "search", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Guards"],
                "summary": "Register a guard",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/SaveGuardRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/guards/eligible": {
            "get": {
                "tags": ["Guards"],
                "summary": "List guards eligible for scheduling",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/guards/{id}": {
            "get": {
                "tags": ["Guards"],
                "summary": "Get guard detail",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "put": {
                "tags": ["Guards"],
                "summary": "Update a guard",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/SaveGuardRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "delete": {
                "tags": ["Guards"],
                "summary": "Remove a guard",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "204": {"description": "No Content"}
                }
            }
        },
        "/zones": {
            "get": {
                "tags": ["Zones"],
                "summary": "List zones",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Zones"],
                "summary": "Create a zone",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/SaveZoneRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/zones/{id}": {
            "get": {
                "tags": ["Zones"],
                "summary": "Get zone detail",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "put": {
                "tags": ["Zones"],
                "summary": "Update a zone",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/SaveZoneRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "delete": {
                "tags": ["Zones"],
                "summary": "Remove a zone",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "204": {"description": "No Content"}
                }
            }
        },
        "/checkpoints": {
            "get": {
                "tags": ["Checkpoints"],
                "summary": "List checkpoints",
                "parameters": [
                    {"name": "zone", "in": "query", "type": "string"},
                    {"name": "search", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Checkpoints"],
                "summary": "Create a checkpoint",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/SaveCheckpointRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/checkpoints/{id}": {
            "get": {
                "tags": ["Checkpoints"],
                "summary": "Get checkpoint detail",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "put": {
                "tags": ["Checkpoints"],
                "summary": "Update a checkpoint",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/SaveCheckpointRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "delete": {
                "tags": ["Checkpoints"],
                "summary": "Remove a checkpoint",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "204": {"description": "No Content"}
                }
            }
        },
        "/checkpoints/{id}/qr-config": {
            "put": {
                "tags": ["Checkpoints"],
                "summary": "Configure QR behaviour for a checkpoint",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/UpdateQRConfigRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/checkpoints/{id}/nfc-config": {
            "put": {
                "tags": ["Checkpoints"],
                "summary": "Configure the NFC tag for a checkpoint",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/UpdateNFCConfigRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/checkpoints/{id}/preview": {
            "get": {
                "tags": ["Checkpoints"],
                "summary": "Preview the current QR payload for a checkpoint",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/schedules": {
            "get": {
                "tags": ["Schedules"],
                "summary": "List schedule rows",
                "parameters": [
                    {"name": "guardId", "in": "query", "type": "string"},
                    {"name": "zone", "in": "query", "type": "string"},
                    {"name": "status", "in": "query", "type": "string", "enum": ["active", "inactive"]},
                    {"name": "search", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/schedules/bulk": {
            "post": {
                "tags": ["Schedules"],
                "summary": "Create a batch of schedule rows for one guard",
                "description": "Validates the whole batch against availability and existing assignments. Nothing is created unless every row passes.",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/BulkCreateScheduleRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/schedules/by-guard": {
            "get": {
                "tags": ["Schedules"],
                "summary": "Schedule rows grouped per guard",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/schedules/by-range": {
            "get": {
                "tags": ["Schedules"],
                "summary": "Schedule rows grouped per date range",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/schedules/zone-load": {
            "get": {
                "tags": ["Schedules"],
                "summary": "Planned visit load per zone",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/schedules/stats": {
            "get": {
                "tags": ["Schedules"],
                "summary": "Headline schedule counters",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/schedules/{id}": {
            "put": {
                "tags": ["Schedules"],
                "summary": "Update time slots or grace window of a schedule row",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/UpdateScheduleRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "delete": {
                "tags": ["Schedules"],
                "summary": "Remove a schedule row",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "204": {"description": "No Content"}
                }
            }
        },
        "/schedules/{id}/status": {
            "patch": {
                "tags": ["Schedules"],
                "summary": "Flip a schedule row between active and inactive",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/availability": {
            "get": {
                "tags": ["Availability"],
                "summary": "List availability records",
                "parameters": [
                    {"name": "guardId", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Availability"],
                "summary": "Record unavailability for one or more guards",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateLeaveRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/availability/check": {
            "get": {
                "tags": ["Availability"],
                "summary": "Check whether a guard is unavailable inside a date range",
                "parameters": [
                    {"name": "guardId", "in": "query", "required": true, "type": "string"},
                    {"name": "from", "in": "query", "required": true, "type": "string"},
                    {"name": "to", "in": "query", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/availability/{id}": {
            "delete": {
                "tags": ["Availability"],
                "summary": "Remove a manual availability record",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "204": {"description": "No Content"}
                }
            }
        },
        "/rosters": {
            "get": {
                "tags": ["Rosters"],
                "summary": "List rosters",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Rosters"],
                "summary": "Create a roster and project its weekly-off records",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/SaveRosterRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/rosters/{id}": {
            "put": {
                "tags": ["Rosters"],
                "summary": "Update a roster, regenerating its projected records",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/SaveRosterRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "delete": {
                "tags": ["Rosters"],
                "summary": "Remove a roster and its projected records",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "204": {"description": "No Content"}
                }
            }
        },
        "/patrols": {
            "get": {
                "tags": ["Patrols"],
                "summary": "List patrol history",
                "parameters": [
                    {"name": "from", "in": "query", "type": "string"},
                    {"name": "to", "in": "query", "type": "string"},
                    {"name": "guard", "in": "query", "type": "string"},
                    {"name": "zone", "in": "query", "type": "string"},
                    {"name": "checkpoint", "in": "query", "type": "string"},
                    {"name": "status", "in": "query", "type": "string", "enum": ["completed", "late", "missed", "skipped"]},
                    {"name": "scanMethod", "in": "query", "type": "string", "enum": ["nfc", "qr"]},
                    {"name": "minLate", "in": "query", "type": "integer"},
                    {"name": "excludeOk", "in": "query", "type": "boolean"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Patrols"],
                "summary": "Record a patrol visit; the outcome is derived server-side",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/RecordVisitRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/patrols/trend": {
            "get": {
                "tags": ["Patrols"],
                "summary": "Daily patrol trend with a summary over a date window",
                "parameters": [
                    {"name": "from", "in": "query", "type": "string"},
                    {"name": "to", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/patrols/locations": {
            "get": {
                "tags": ["Patrols"],
                "summary": "Patrol outcome counts per zone and checkpoint",
                "parameters": [
                    {"name": "from", "in": "query", "type": "string"},
                    {"name": "to", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/reports/patrols/export.csv": {
            "get": {
                "tags": ["Reports"],
                "summary": "Download patrol history as CSV",
                "produces": ["text/csv"],
                "parameters": [
                    {"name": "from", "in": "query", "type": "string"},
                    {"name": "to", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "CSV file"}
                }
            }
        },
        "/reports/patrols/export.pdf": {
            "get": {
                "tags": ["Reports"],
                "summary": "Download patrol history as PDF",
                "produces": ["application/pdf"],
                "parameters": [
                    {"name": "from", "in": "query", "type": "string"},
                    {"name": "to", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "PDF file"}
                }
            }
        },
        "/reports/leaves": {
            "get": {
                "tags": ["Reports"],
                "summary": "Leave report rows with range status and day counts",
                "parameters": [
                    {"name": "from", "in": "query", "type": "string"},
                    {"name": "to", "in": "query", "type": "string"},
                    {"name": "guardId", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/reports/rosters": {
            "get": {
                "tags": ["Reports"],
                "summary": "Roster report rows with weekday labels and range status",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/audit": {
            "get": {
                "tags": ["Audit"],
                "summary": "List recent audit entries",
                "parameters": [
                    {"name": "module", "in": "query", "type": "string"},
                    {"name": "limit", "in": "query", "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/display/checkpoints/{id}": {
            "get": {
                "tags": ["Display"],
                "summary": "Public QR display for a checkpoint",
                "description": "Unauthenticated. Served outside the /api/v1 prefix so wall-mounted screens can poll it.",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        }
    },
    "definitions": {
        "LoginRequest": {
            "type": "object",
            "properties": {
                "email": {"type": "string"},
                "password": {"type": "string"}
            },
            "required": ["email", "password"]
        },
        "SaveGuardRequest": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "phone": {"type": "string"},
                "email": {"type": "string"},
                "employee_id": {"type": "string"},
                "status": {"type": "string", "enum": ["active", "on-duty", "inactive"]},
                "assigned_zone": {"type": "string"}
            },
            "required": ["name"]
        },
        "SaveZoneRequest": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "description": {"type": "string"},
                "location": {"type": "string"},
                "latitude": {"type": "number"},
                "longitude": {"type": "number"},
                "status": {"type": "string"}
            },
            "required": ["name"]
        },
        "SaveCheckpointRequest": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "zone_id": {"type": "string"},
                "zone_name": {"type": "string"},
                "scan_types": {"type": "array", "items": {"type": "string", "enum": ["nfc", "qr", "dynamic-qr"]}},
                "tag_id": {"type": "string"},
                "location": {"type": "string"},
                "latitude": {"type": "number"},
                "longitude": {"type": "number"},
                "status": {"type": "string"}
            },
            "required": ["name", "zone_id", "zone_name", "scan_types"]
        },
        "UpdateQRConfigRequest": {
            "type": "object",
            "properties": {
                "payload": {"type": "string"},
                "size": {"type": "integer"},
                "dynamic": {"type": "boolean"},
                "rotate_every_minutes": {"type": "integer"}
            }
        },
        "UpdateNFCConfigRequest": {
            "type": "object",
            "properties": {
                "payload": {"type": "string"},
                "tag_serial": {"type": "string"}
            }
        },
        "BulkCreateScheduleRequest": {
            "type": "object",
            "properties": {
                "guard_id": {"type": "string"},
                "start_date": {"type": "string"},
                "end_date": {"type": "string"},
                "grace_time_minutes": {"type": "integer"},
                "rows": {
                    "type": "array",
                    "items": {"$ref": "#/definitions/ScheduleRowRequest"}
                }
            },
            "required": ["guard_id", "start_date", "end_date", "rows"]
        },
        "ScheduleRowRequest": {
            "type": "object",
            "properties": {
                "checkpoint_id": {"type": "string"},
                "time_slots": {
                    "type": "array",
                    "items": {"$ref": "#/definitions/SlotRequest"}
                }
            }
        },
        "SlotRequest": {
            "type": "object",
            "properties": {
                "time": {"type": "string", "example": "09:00"},
                "label": {"type": "string"}
            },
            "required": ["time"]
        },
        "UpdateScheduleRequest": {
            "type": "object",
            "properties": {
                "time_slots": {
                    "type": "array",
                    "items": {"$ref": "#/definitions/SlotRequest"}
                },
                "grace_time_minutes": {"type": "integer"}
            }
        },
        "CreateLeaveRequest": {
            "type": "object",
            "properties": {
                "guard_ids": {"type": "array", "items": {"type": "string"}},
                "mode": {"type": "string", "enum": ["date-range", "weekly-off"]},
                "type": {"type": "string", "enum": ["leave", "off-roster", "training", "holiday"]},
                "start_date": {"type": "string"},
                "end_date": {"type": "string"},
                "weekdays": {"type": "array", "items": {"type": "integer"}},
                "note": {"type": "string"}
            },
            "required": ["guard_ids", "mode", "type", "start_date", "end_date"]
        },
        "SaveRosterRequest": {
            "type": "object",
            "properties": {
                "title": {"type": "string"},
                "zone_name": {"type": "string"},
                "guard_ids": {"type": "array", "items": {"type": "string"}},
                "day_off_weekdays": {"type": "array", "items": {"type": "integer"}},
                "effective_from": {"type": "string"},
                "effective_to": {"type": "string"}
            },
            "required": ["title", "guard_ids", "day_off_weekdays", "effective_from", "effective_to"]
        },
        "PatrolHistory": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "date": {"type": "string"},
                "guard_id": {"type": "string"},
                "guard_name": {"type": "string"},
                "zone_name": {"type": "string"},
                "checkpoint_name": {"type": "string"},
                "status": {"type": "string", "enum": ["completed", "late", "missed", "skipped"]},
                "scan_method": {"type": "string", "enum": ["nfc", "qr"]},
                "grace_time_minutes": {"type": "integer"},
                "late_by_minutes": {"type": "integer"},
                "skip_reason": {"type": "string"}
            }
        },
        "RecordVisitRequest": {
            "type": "object",
            "properties": {
                "date": {"type": "string"},
                "guard_id": {"type": "string"},
                "guard_name": {"type": "string"},
                "zone_name": {"type": "string"},
                "checkpoint_name": {"type": "string"},
                "scan_method": {"type": "string", "enum": ["nfc", "qr"]},
                "slot_time": {"type": "string"},
                "grace_time_minutes": {"type": "integer"},
                "scan_at": {"type": "string"}
            },
            "required": ["date", "guard_id", "scan_method", "slot_time"]
        },
        "APIError": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"},
                "status": {"type": "integer"}
            }
        },
        "ResponseEnvelope": {
            "type": "object",
            "properties": {
                "data": {"type": "object"},
                "error": {"$ref": "#/definitions/APIError"},
                "pagination": {"type": "object"},
                "meta": {"type": "object"}
            }
        }
    }
}`

type swaggerDoc struct{}

// ReadDoc returns the Swagger document.
func (s *swaggerDoc) ReadDoc() string {
	return docTemplate
}

func init() {
	swag.Register(swag.Name, &swaggerDoc{})
}
