package validators

import "go.mongodb.org/mongo-driver/bson"

var PackageValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{
			"name",
			"description",
			"price",
			"duration",
			"destinations",
			"isActive",
			"createdAt",
			"updatedAt",
		},
		"additionalProperties": true,

		"properties": bson.M{
			"_id": bson.M{
				"bsonType": "objectId",
			},

			"name": bson.M{
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

			"duration": bson.M{
				"bsonType":  "string",
				"minLength": 1,
			},

			"destinations": bson.M{
				"bsonType": "array",
				"minItems": 1,
				"items": bson.M{
					"bsonType": "string",
				},
			},

			"accommodation": bson.M{
				"bsonType": "object",
				"properties": bson.M{
					"rating": bson.M{
						"bsonType": []string{"int", "double"},
						"minimum":  1,
						"maximum":  5,
					},
				},
			},

			"minPersons": bson.M{
				"bsonType": "int",
				"minimum":  1,
			},

			"isActive": bson.M{
				"bsonType": "bool",
			},

			"isFeatured": bson.M{
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
