// Movieseed - MovieLens Bulk Seed Generator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/movieseed

package dataset

import (
	"fmt"
	"strconv"
)

// Movie file columns (u.item). Genre flags run from movieColGenres to the
// end of the line.
const (
	movieColID = iota
	movieColTitle
	movieColReleaseDate
	movieColVideoReleaseDate
	movieColIMDbURL
	movieColGenres

	movieMinColumns = movieColGenres
)

// User file columns (u.user).
const (
	userColID = iota
	userColAge
	userColGender
	userColOccupation
	userColZipCode

	userColumns
)

// Rating file columns (u.data).
const (
	ratingColUserID = iota
	ratingColMovieID
	ratingColRating
	ratingColTimestamp

	ratingColumns
)

// Movie is the document written for one u.item line.
// RatingCount and RatingMean are set only when an aggregation provider
// is configured.
type Movie struct {
	ID               string   `json:"id"`
	Title            string   `json:"title"`
	ReleaseDate      string   `json:"release_date"`
	VideoReleaseDate string   `json:"video_release_date,omitempty"`
	IMDbURL          string   `json:"imdb_url"`
	Genre            []string `json:"genre"`
	RatingCount      *int64   `json:"rating_count,omitempty"`
	RatingMean       *float64 `json:"rating_mean,omitempty"`
}

// Gender is the full-word gender written for a user.
type Gender string

const (
	GenderMale    Gender = "male"
	GenderFemale  Gender = "female"
	GenderUnknown Gender = "unknown"
)

var genderCodes = map[string]Gender{
	"M": GenderMale,
	"F": GenderFemale,
}

// ParseGender maps a single-letter gender code, falling back to GenderUnknown.
func ParseGender(code string) Gender {
	if g, ok := genderCodes[code]; ok {
		return g
	}
	return GenderUnknown
}

// User is the document written for one u.user line.
type User struct {
	ID         string `json:"id"`
	Age        int    `json:"age"`
	Gender     Gender `json:"gender"`
	Occupation string `json:"occupation"`
	ZipCode    string `json:"zip_code"`
}

// Rating is the document written for one u.data line.
type Rating struct {
	UserID  int64 `json:"user_id"`
	MovieID int64 `json:"movie_id"`
	Rating  int   `json:"rating"`

	// Timestamp is milliseconds since the Unix epoch.
	Timestamp int64 `json:"timestamp"`
}

// parseMovie builds a Movie from the columns of one u.item line.
// The rating fields are left unset.
func parseMovie(fields []string, genres GenreTable) (*Movie, error) {
	if len(fields) < movieMinColumns {
		return nil, fmt.Errorf("%w: movie needs at least %d columns, got %d", ErrMalformedLine, movieMinColumns, len(fields))
	}

	flags := make([]int, 0, len(fields)-movieColGenres)
	for _, raw := range fields[movieColGenres:] {
		flag, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("genre flag: %w", err)
		}
		flags = append(flags, flag)
	}

	names, err := genres.DetectGenres(flags)
	if err != nil {
		return nil, err
	}

	return &Movie{
		ID:               fields[movieColID],
		Title:            fields[movieColTitle],
		ReleaseDate:      fields[movieColReleaseDate],
		VideoReleaseDate: fields[movieColVideoReleaseDate],
		IMDbURL:          fields[movieColIMDbURL],
		Genre:            names,
	}, nil
}

// parseUser builds a User from the columns of one u.user line.
func parseUser(fields []string) (*User, error) {
	if len(fields) < userColumns {
		return nil, fmt.Errorf("%w: user needs %d columns, got %d", ErrMalformedLine, userColumns, len(fields))
	}

	age, err := strconv.Atoi(fields[userColAge])
	if err != nil {
		return nil, fmt.Errorf("age: %w", err)
	}

	return &User{
		ID:         fields[userColID],
		Age:        age,
		Gender:     ParseGender(fields[userColGender]),
		Occupation: fields[userColOccupation],
		ZipCode:    fields[userColZipCode],
	}, nil
}

// parseRating builds a Rating from the columns of one u.data line.
func parseRating(fields []string) (*Rating, error) {
	if len(fields) < ratingColumns {
		return nil, fmt.Errorf("%w: rating needs %d columns, got %d", ErrMalformedLine, ratingColumns, len(fields))
	}

	userID, err := strconv.ParseInt(fields[ratingColUserID], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("user id: %w", err)
	}
	movieID, err := strconv.ParseInt(fields[ratingColMovieID], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("movie id: %w", err)
	}
	value, err := strconv.Atoi(fields[ratingColRating])
	if err != nil {
		return nil, fmt.Errorf("rating: %w", err)
	}
	seconds, err := strconv.ParseInt(fields[ratingColTimestamp], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("timestamp: %w", err)
	}

	return &Rating{
		UserID:    userID,
		MovieID:   movieID,
		Rating:    value,
		Timestamp: seconds * 1000,
	}, nil
}
