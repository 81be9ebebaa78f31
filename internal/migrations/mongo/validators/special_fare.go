package validators

import "go.mongodb.org/mongo-driver/bson"

var SpecialFareValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{
			"title",
			"description",
			"price",
			"originalPrice",
			"validFrom",
			"validTo",
			"departureCities",
			"arrivalCities",
			"isActive",
			"createdAt",
			"updatedAt",
		},
		"additionalProperties": true,

		"properties": bson.M{
			"_id": bson.M{
				"bsonType": "objectId",
			},

			"title": bson.M{
				"bsonType":  "string",
				"minLength": 2,
				"maxLength": 200,
			},

			"description": bson.M{
				"bsonType":  "string",
				"minLength": 1,
			},

			"price": bson.M{
				"bsonType":         []string{"double", "int", "long", "decimal"},
				"exclusiveMinimum": true,
				"minimum":          0,
			},

			"originalPrice": bson.M{
				"bsonType":         []string{"double", "int", "long", "decimal"},
				"exclusiveMinimum": true,
				"minimum":          0,
			},

			"currency": bson.M{
				"bsonType":  "string",
				"minLength": 3,
				"maxLength": 3,
			},

			"validFrom": bson.M{
				"bsonType": "date",
			},

			"validTo": bson.M{
				"bsonType": "date",
			},

			"departureCities": bson.M{
				"bsonType": "array",
				"minItems": 1,
				"items": bson.M{
					"bsonType": "object",
					"required": []string{"city"},
				},
			},

			"arrivalCities": bson.M{
				"bsonType": "array",
				"minItems": 1,
				"items": bson.M{
					"bsonType": "object",
					"required": []string{"city"},
				},
			},

			"fareType": bson.M{
				"enum": []string{"sale", "seasonal", "flash", "standard"},
			},

			"tripType": bson.M{
				"enum": []string{"oneway", "return"},
			},

			"cancellationPolicy": bson.M{
				"enum": []string{"refundable", "non-refundable", "partial"},
			},

			"isActive": bson.M{
				"bsonType": "bool",
			},

			"isFeatured": bson.M{
				"bsonType": "bool",
			},

			"isLimitedTime": bson.M{
				"bsonType": "bool",
			},

			"isBestSeller": bson.M{
				"bsonType": "bool",
			},

			"createdAt": bson.M{
				"bsonType": "date",
			},

			"updatedAt": bson.M{
				"bsonType": "date",
			},
		},
	},
}
