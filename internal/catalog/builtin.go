package catalog

import "github.com/playperu/citydistance/internal/geoquiz"

// builtin mirrors the rows seeded by migration 00002.
var builtin = []geoquiz.City{
	{Name: "Beijing", Coord: geoquiz.Coordinate{Lng: 116.407526, Lat: 39.90403}},
	{Name: "Shanghai", Coord: geoquiz.Coordinate{Lng: 121.473701, Lat: 31.230416}},
	{Name: "Guangzhou", Coord: geoquiz.Coordinate{Lng: 113.264385, Lat: 23.12911}},
	{Name: "Shenzhen", Coord: geoquiz.Coordinate{Lng: 114.085947, Lat: 22.547}},
	{Name: "Chengdu", Coord: geoquiz.Coordinate{Lng: 104.065735, Lat: 30.659462}},
	{Name: "Hangzhou", Coord: geoquiz.Coordinate{Lng: 120.15507, Lat: 30.274085}},
	{Name: "Wuhan", Coord: geoquiz.Coordinate{Lng: 114.298572, Lat: 30.584355}},
	{Name: "Xi'an", Coord: geoquiz.Coordinate{Lng: 108.948024, Lat: 34.263161}},
	{Name: "Chongqing", Coord: geoquiz.Coordinate{Lng: 106.504962, Lat: 29.533155}},
	{Name: "Nanjing", Coord: geoquiz.Coordinate{Lng: 118.76741, Lat: 32.041544}},
	{Name: "Tianjin", Coord: geoquiz.Coordinate{Lng: 117.190182, Lat: 39.125596}},
	{Name: "Suzhou", Coord: geoquiz.Coordinate{Lng: 120.619585, Lat: 31.299379}},
	{Name: "Changsha", Coord: geoquiz.Coordinate{Lng: 112.982279, Lat: 28.19409}},
	{Name: "Shenyang", Coord: geoquiz.Coordinate{Lng: 123.429096, Lat: 41.796767}},
	{Name: "Qingdao", Coord: geoquiz.Coordinate{Lng: 120.355173, Lat: 36.082982}},
	{Name: "Zhengzhou", Coord: geoquiz.Coordinate{Lng: 113.665412, Lat: 34.757975}},
	{Name: "Dalian", Coord: geoquiz.Coordinate{Lng: 121.618622, Lat: 38.91459}},
	{Name: "Dongguan", Coord: geoquiz.Coordinate{Lng: 113.746262, Lat: 23.046237}},
	{Name: "Ningbo", Coord: geoquiz.Coordinate{Lng: 121.549792, Lat: 29.868388}},
	{Name: "Xiamen", Coord: geoquiz.Coordinate{Lng: 118.11022, Lat: 24.490474}},
	{Name: "Fuzhou", Coord: geoquiz.Coordinate{Lng: 119.296494, Lat: 26.074507}},
	{Name: "Wuxi", Coord: geoquiz.Coordinate{Lng: 120.301663, Lat: 31.574729}},
	{Name: "Hefei", Coord: geoquiz.Coordinate{Lng: 117.283042, Lat: 31.86119}},
	{Name: "Kunming", Coord: geoquiz.Coordinate{Lng: 102.712251, Lat: 25.040609}},
	{Name: "Harbin", Coord: geoquiz.Coordinate{Lng: 126.642464, Lat: 45.756967}},
	{Name: "Jinan", Coord: geoquiz.Coordinate{Lng: 117.12, Lat: 36.651216}},
	{Name: "Foshan", Coord: geoquiz.Coordinate{Lng: 113.121416, Lat: 23.021548}},
	{Name: "Changchun", Coord: geoquiz.Coordinate{Lng: 125.3245, Lat: 43.886841}},
	{Name: "Wenzhou", Coord: geoquiz.Coordinate{Lng: 120.672111, Lat: 28.000575}},
	{Name: "Shijiazhuang", Coord: geoquiz.Coordinate{Lng: 114.502461, Lat: 38.045474}},
}
