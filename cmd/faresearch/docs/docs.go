// Package docs holds the OpenAPI document served under /swagger and /docs.
// Keep it in step with the handler annotations.
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
        "/v1/bookings": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["bookings"],
                "summary": "Book a reviewed fare",
                "parameters": [
                    {
                        "description": "Booking",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/booking.BookingRequest"}
                    }
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/booking.Booking"}},
                    "400": {"description": "Bad Request", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "502": {"description": "Bad Gateway", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/v1/bookings/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["bookings"],
                "summary": "Fetch a booking",
                "parameters": [
                    {"type": "string", "description": "Booking ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/booking.Booking"}},
                    "404": {"description": "Not Found", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/v1/fares/review": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["bookings"],
                "summary": "Review a fare before booking",
                "parameters": [
                    {
                        "description": "Fare to review",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/booking.ReviewRequest"}
                    }
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/booking.Review"}},
                    "400": {"description": "Bad Request", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "502": {"description": "Bad Gateway", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/v1/flights/filter": {
            "post": {
                "description": "Apply filters, sort and page window over the stored search",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["flights"],
                "summary": "Filter existing flight results",
                "parameters": [
                    {
                        "description": "Filter Criteria",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/flight.FilterRequest"}
                    }
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/flight.FilterResponse"}},
                    "400": {"description": "Bad Request", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/v1/flights/search": {
            "post": {
                "description": "Fan out to every supplier and return normalized results",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["flights"],
                "summary": "Search flights",
                "parameters": [
                    {
                        "description": "Search Criteria",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/flight.SearchRequest"}
                    }
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/flight.FlightSearchResponse"}},
                    "400": {"description": "Bad Request", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "502": {"description": "Bad Gateway", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            },
            "delete": {
                "consumes": ["application/json"],
                "tags": ["flights"],
                "summary": "Drop stored results for a search",
                "parameters": [
                    {
                        "description": "Search Criteria",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/flight.SearchRequest"}
                    }
                ],
                "responses": {
                    "204": {"description": "No Content"}
                }
            }
        }
    },
    "definitions": {
        "booking.Booking": {
            "type": "object",
            "properties": {
                "id": {"type": "string", "example": "0"},
                "reference": {"type": "string"},
                "supplier": {"type": "string"},
                "priceID": {"type": "string"},
                "supplierRef": {"type": "string"},
                "status": {"type": "string"},
                "totalFare": {"type": "integer"},
                "contactEmail": {"type": "string"},
                "contactPhone": {"type": "string"},
                "passengers": {"type": "array", "items": {"$ref": "#/definitions/booking.Passenger"}},
                "createdAt": {"type": "string"}
            }
        },
        "booking.BookingRequest": {
            "type": "object",
            "required": ["contactEmail", "supplier"],
            "properties": {
                "supplier": {"type": "string"},
                "priceID": {"type": "string"},
                "contactEmail": {"type": "string"},
                "contactPhone": {"type": "string"},
                "passengers": {"type": "array", "items": {"$ref": "#/definitions/booking.Passenger"}}
            }
        },
        "booking.Passenger": {
            "type": "object",
            "required": ["firstName", "lastName"],
            "properties": {
                "title": {"type": "string"},
                "firstName": {"type": "string"},
                "lastName": {"type": "string"},
                "type": {"type": "string", "enum": ["ADULT", "CHILD", "INFANT"]},
                "dateOfBirth": {"type": "string"}
            }
        },
        "booking.Review": {
            "type": "object",
            "properties": {
                "supplier": {"type": "string"},
                "priceID": {"type": "string"},
                "fare": {"$ref": "#/definitions/flight.Fare"},
                "quotedTotal": {"type": "integer"},
                "priceChanged": {"type": "boolean"},
                "difference": {"type": "integer"}
            }
        },
        "booking.ReviewRequest": {
            "type": "object",
            "required": ["supplier"],
            "properties": {
                "supplier": {"type": "string"},
                "priceID": {"type": "string"},
                "quotedTotal": {"type": "integer"}
            }
        },
        "flight.Fare": {
            "type": "object",
            "properties": {
                "fareId": {"type": "string"},
                "brand": {"type": "string"},
                "totalFare": {"type": "integer"},
                "baseFare": {"type": "integer"},
                "tax": {"type": "integer"},
                "cabinClass": {"type": "string"},
                "checkedBaggage": {"type": "string"},
                "cabinBaggage": {"type": "string"},
                "meal": {"type": "boolean"},
                "refundType": {"type": "string"},
                "priceID": {"type": "string"},
                "seatsAvailable": {"type": "integer"}
            }
        },
        "flight.ActiveFilters": {
            "type": "object",
            "properties": {
                "timeCategories": {"type": "array", "items": {"type": "string", "enum": ["early_morning", "morning", "mid_day", "night"]}},
                "stopCategories": {"type": "array", "items": {"type": "string"}},
                "fareTypes": {"type": "array", "items": {"type": "string", "enum": ["Refundable", "Non-refundable"]}},
                "airlines": {"type": "array", "items": {"type": "string"}},
                "durationCategories": {"type": "array", "items": {"type": "string"}},
                "cabinClasses": {"type": "array", "items": {"type": "string"}},
                "priceRange": {"$ref": "#/definitions/flight.PriceRange"},
                "seatsAvailable": {"type": "boolean"},
                "baggage": {"type": "boolean"},
                "meal": {"type": "boolean"}
            }
        },
        "flight.Facets": {
            "type": "object",
            "properties": {
                "airlines": {"type": "array", "items": {"type": "string"}},
                "minPrice": {"type": "integer"},
                "maxPrice": {"type": "integer"}
            }
        },
        "flight.FilterKeys": {
            "type": "object",
            "properties": {
                "timeCategory": {"type": "string"},
                "stopCategory": {"type": "string"},
                "fareType": {"type": "string"},
                "durationCategory": {"type": "string"},
                "airline": {"type": "string"},
                "airlineName": {"type": "string"},
                "route": {"type": "string"},
                "cabinClass": {"type": "string"},
                "seatsAvailable": {"type": "boolean"},
                "hasBaggage": {"type": "boolean"},
                "hasMeal": {"type": "boolean"}
            }
        },
        "flight.FilterRequest": {
            "type": "object",
            "required": ["departure_date", "destination", "origin"],
            "properties": {
                "origin": {"type": "string"},
                "destination": {"type": "string"},
                "departure_date": {"type": "string"},
                "return_date": {"type": "string"},
                "passengers": {"type": "integer"},
                "cabin_class": {"type": "string"},
                "filters": {"$ref": "#/definitions/flight.ActiveFilters"},
                "sort": {"$ref": "#/definitions/flight.SortState"},
                "visible": {"type": "integer"}
            }
        },
        "flight.FilterResponse": {
            "type": "object",
            "properties": {
                "search_criteria": {"$ref": "#/definitions/flight.SearchCriteria"},
                "metadata": {"$ref": "#/definitions/flight.Metadata"},
                "listings": {"type": "array", "items": {"$ref": "#/definitions/flight.Listing"}},
                "total": {"type": "integer"},
                "visible": {"type": "integer"},
                "hasMore": {"type": "boolean"},
                "facets": {"$ref": "#/definitions/flight.Facets"}
            }
        },
        "flight.FlightSearchItem": {
            "type": "object",
            "properties": {
                "supplier": {"type": "string", "enum": ["airiq", "tbo", "tripjack"]},
                "segments": {"type": "array", "items": {"$ref": "#/definitions/flight.FlightSegment"}},
                "fares": {"type": "array", "items": {"$ref": "#/definitions/flight.Fare"}}
            }
        },
        "flight.FlightSearchResponse": {
            "type": "object",
            "properties": {
                "search_criteria": {"$ref": "#/definitions/flight.SearchCriteria"},
                "metadata": {"$ref": "#/definitions/flight.Metadata"},
                "items": {"type": "array", "items": {"$ref": "#/definitions/flight.FlightSearchItem"}}
            }
        },
        "flight.FlightSegment": {
            "type": "object",
            "properties": {
                "airlineCode": {"type": "string"},
                "airlineName": {"type": "string"},
                "flightNumber": {"type": "string"},
                "origin": {"type": "string"},
                "originCity": {"type": "string"},
                "destination": {"type": "string"},
                "destinationCity": {"type": "string"},
                "terminal": {"type": "string"},
                "departureTime": {"type": "string", "example": "2025-12-15T07:05"},
                "arrivalTime": {"type": "string", "example": "2025-12-15T09:05"},
                "duration": {"type": "integer"},
                "stops": {"type": "integer"}
            }
        },
        "flight.Listing": {
            "type": "object",
            "properties": {
                "supplier": {"type": "string", "enum": ["airiq", "tbo", "tripjack"]},
                "segments": {"type": "array", "items": {"$ref": "#/definitions/flight.FlightSegment"}},
                "fares": {"type": "array", "items": {"$ref": "#/definitions/flight.Fare"}},
                "filterKeys": {"$ref": "#/definitions/flight.FilterKeys"}
            }
        },
        "flight.Metadata": {
            "type": "object",
            "properties": {
                "search_id": {"type": "string"},
                "total_results": {"type": "integer"},
                "suppliers_queried": {"type": "integer"},
                "suppliers_succeeded": {"type": "integer"},
                "suppliers_failed": {"type": "integer"},
                "supplier_errors": {"type": "array", "items": {"$ref": "#/definitions/flight.SupplierError"}},
                "missing_price_ids": {"type": "integer"},
                "search_time_ms": {"type": "integer"},
                "cache_hit": {"type": "boolean"},
                "cache_key": {"type": "string"}
            }
        },
        "flight.PriceRange": {
            "type": "object",
            "properties": {
                "min": {"type": "integer"},
                "max": {"type": "integer"}
            }
        },
        "flight.SearchCriteria": {
            "type": "object",
            "properties": {
                "origin": {"type": "string"},
                "destination": {"type": "string"},
                "departure_date": {"type": "string"},
                "return_date": {"type": "string"},
                "passengers": {"type": "integer"},
                "cabin_class": {"type": "string"}
            }
        },
        "flight.SearchRequest": {
            "type": "object",
            "required": ["departure_date", "destination", "origin"],
            "properties": {
                "origin": {"type": "string"},
                "destination": {"type": "string"},
                "departure_date": {"type": "string"},
                "return_date": {"type": "string"},
                "passengers": {"type": "integer"},
                "cabin_class": {"type": "string"}
            }
        },
        "flight.SortState": {
            "type": "object",
            "properties": {
                "key": {"type": "string", "enum": ["price", "duration", "departure", "arrival", "best_value"]},
                "direction": {"type": "string", "enum": ["asc", "desc"]}
            }
        },
        "flight.SupplierError": {
            "type": "object",
            "properties": {
                "supplier": {"type": "string"},
                "code": {"type": "string"},
                "message": {"type": "string"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{"http"},
	Title:            "Fare Search API",
	Description:      "Searches flight suppliers, then filters, sorts and books their fares.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
