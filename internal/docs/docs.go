// Package docs holds the Swagger spec of the daemon API in the layout swag
// generates. Regenerate it with go generate ./cmd/daemon after changing the
// handler annotations; daemon tests fail when routes and spec disagree.
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
        "/config": {
            "get": {
                "description": "Returns the current settings on GET and updates selected fields on PUT.",
                "produces": ["application/json"],
                "tags": ["config"],
                "summary": "Get or update settings",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/daemon.Settings"}}
                }
            },
            "put": {
                "description": "Returns the current settings on GET and updates selected fields on PUT.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["config"],
                "summary": "Get or update settings",
                "parameters": [
                    {
                        "description": "Fields to update (PUT only)",
                        "name": "request",
                        "in": "body",
                        "schema": {"$ref": "#/definitions/daemon.SettingsUpdateRequest"}
                    }
                ],
                "responses": {
                    "200": {"description": "Update acknowledgment", "schema": {"$ref": "#/definitions/daemon.StatusResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/daemon.ErrorResponse"}}
                }
            }
        },
        "/health": {
            "get": {
                "description": "Returns service health and version.",
                "produces": ["application/json"],
                "tags": ["system"],
                "summary": "Health check",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/daemon.HealthResponse"}}
                }
            }
        },
        "/jobs": {
            "get": {
                "description": "Returns all frame dump jobs with progress.",
                "produces": ["application/json"],
                "tags": ["jobs"],
                "summary": "List jobs",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/daemon.Job"}}}
                }
            }
        },
        "/jobs/{jobID}": {
            "get": {
                "description": "Returns the status and progress of a frame dump job.",
                "produces": ["application/json"],
                "tags": ["jobs"],
                "summary": "Get job details",
                "parameters": [
                    {"type": "string", "description": "Job ID", "name": "jobID", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/daemon.Job"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/daemon.ErrorResponse"}}
                }
            }
        },
        "/thumbnails": {
            "get": {
                "description": "GET lists thumbnails created by this daemon; POST extracts one frame, resizes it and saves it as a JPEG.",
                "produces": ["application/json"],
                "tags": ["thumbnails"],
                "summary": "List or create thumbnails",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/daemon.Thumbnail"}}}
                }
            },
            "post": {
                "description": "GET lists thumbnails created by this daemon; POST extracts one frame, resizes it and saves it as a JPEG.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["thumbnails"],
                "summary": "List or create thumbnails",
                "parameters": [
                    {
                        "description": "Thumbnail to create (POST only)",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/daemon.ThumbnailRequest"}
                    }
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/daemon.Thumbnail"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/daemon.ErrorResponse"}},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/daemon.ErrorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/daemon.ErrorResponse"}}
                }
            }
        },
        "/thumbnails/{thumbnailID}": {
            "get": {
                "description": "Returns the stored record of a thumbnail.",
                "produces": ["application/json"],
                "tags": ["thumbnails"],
                "summary": "Get thumbnail details",
                "parameters": [
                    {"type": "string", "description": "Thumbnail ID", "name": "thumbnailID", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/daemon.Thumbnail"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/daemon.ErrorResponse"}}
                }
            }
        },
        "/thumbnails/{thumbnailID}/file": {
            "get": {
                "description": "Streams the JPEG file of a thumbnail.",
                "produces": ["image/jpeg"],
                "tags": ["thumbnails"],
                "summary": "Download thumbnail",
                "parameters": [
                    {"type": "string", "description": "Thumbnail ID", "name": "thumbnailID", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "file"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/daemon.ErrorResponse"}}
                }
            }
        },
        "/videos/dump": {
            "post": {
                "description": "Decodes the whole video in the background and saves every step-th frame as 1000.jpg, 1001.jpg, ... Without output_dir the frames go to \u003coutput_dir\u003e/\u003cvideo name\u003e/\u003cjob_id\u003e. An output_dir that already holds dumped frames or is used by a running job is rejected.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["videos"],
                "summary": "Start a frame dump job",
                "parameters": [
                    {
                        "description": "Dump options",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/daemon.DumpRequest"}
                    }
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/daemon.StartJobResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/daemon.ErrorResponse"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/daemon.ErrorResponse"}},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/daemon.ErrorResponse"}}
                }
            }
        },
        "/videos/metadata": {
            "post": {
                "description": "Opens the video and returns its frame count, resolution and frame rate.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["videos"],
                "summary": "Probe video metadata",
                "parameters": [
                    {
                        "description": "Video to probe",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/daemon.MetadataRequest"}
                    }
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/capture.Metadata"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/daemon.ErrorResponse"}},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/daemon.ErrorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "capture.Metadata": {
            "type": "object",
            "properties": {
                "codec": {"type": "string", "example": "h264"},
                "duration": {"type": "integer", "example": 10000000000},
                "frame_count": {"type": "integer", "example": 300},
                "frame_rate": {"type": "number", "example": 30},
                "height": {"type": "integer", "example": 1080},
                "rotation": {"type": "integer", "example": 90},
                "width": {"type": "integer", "example": 1920}
            }
        },
        "daemon.DumpRequest": {
            "type": "object",
            "properties": {
                "output_dir": {"type": "string", "example": "thumbnails/sample"},
                "step": {"type": "integer", "example": 30},
                "video_path": {"type": "string", "example": "/videos/sample.mp4"}
            }
        },
        "daemon.ErrorResponse": {
            "type": "object",
            "properties": {
                "error": {"type": "string", "example": "description of the error"}
            }
        },
        "daemon.HealthResponse": {
            "type": "object",
            "properties": {
                "status": {"type": "string", "example": "ok"},
                "version": {"type": "string", "example": "0.1.0"}
            }
        },
        "daemon.Job": {
            "type": "object",
            "properties": {
                "created_at": {"type": "string", "example": "2024-01-01T12:00:00Z"},
                "finished_at": {"type": "string", "example": "2024-01-01T12:05:00Z"},
                "frames_decoded": {"type": "integer", "example": 126},
                "frames_expected": {"type": "integer", "example": 10},
                "frames_saved": {"type": "integer", "example": 4},
                "frames_total": {"type": "integer", "example": 300},
                "job_id": {"type": "string", "example": "job_abcd1234"},
                "last_error": {"type": "string", "example": "failed to decode frame"},
                "output_dir": {"type": "string", "example": "thumbnails/sample"},
                "progress": {"type": "number", "example": 0.42},
                "status": {"type": "string", "example": "running"},
                "step": {"type": "integer", "example": 30},
                "type": {"type": "string", "example": "dump_frames"},
                "updated_at": {"type": "string", "example": "2024-01-01T12:05:00Z"},
                "video_path": {"type": "string", "example": "/videos/sample.mp4"}
            }
        },
        "daemon.MetadataRequest": {
            "type": "object",
            "properties": {
                "path": {"type": "string", "example": "/videos/sample.mp4"}
            }
        },
        "daemon.Settings": {
            "type": "object",
            "properties": {
                "backend": {"type": "string", "example": "ffmpeg"},
                "default_size": {"type": "array", "items": {"type": "integer"}, "example": [320, 180]},
                "jpeg_quality": {"type": "integer", "example": 95},
                "output_dir": {"type": "string", "example": "thumbnails"}
            }
        },
        "daemon.SettingsUpdateRequest": {
            "type": "object",
            "properties": {
                "default_size": {"type": "array", "items": {"type": "integer"}, "example": [640, 360]},
                "jpeg_quality": {"type": "integer", "example": 90},
                "output_dir": {"type": "string", "example": "thumbnails"}
            }
        },
        "daemon.StartJobResponse": {
            "type": "object",
            "properties": {
                "job_id": {"type": "string", "example": "job_abcd1234"},
                "status": {"type": "string", "example": "started"}
            }
        },
        "daemon.StatusResponse": {
            "type": "object",
            "properties": {
                "status": {"type": "string", "example": "ok"}
            }
        },
        "daemon.Thumbnail": {
            "type": "object",
            "properties": {
                "created_at": {"type": "string", "example": "2024-01-01T12:00:00Z"},
                "frame_index": {"type": "integer", "example": 150},
                "height": {"type": "integer", "example": 180},
                "path": {"type": "string", "example": "thumbnails/thumbnail_1150.jpg"},
                "source": {"$ref": "#/definitions/capture.Metadata"},
                "thumbnail_id": {"type": "string", "example": "thm_abcd1234"},
                "video_path": {"type": "string", "example": "/videos/sample.mp4"},
                "width": {"type": "integer", "example": 320}
            }
        },
        "daemon.ThumbnailRequest": {
            "type": "object",
            "properties": {
                "frame_index": {"type": "integer", "example": 150},
                "output_dir": {"type": "string", "example": "thumbnails"},
                "size": {"type": "array", "items": {"type": "integer"}, "example": [320, 180]},
                "video_path": {"type": "string", "example": "/videos/sample.mp4"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Frame Thumbnail API",
	Description:      "API for probing videos and extracting resized frame thumbnails.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
