package otp

const serverInfoQuery = `query serverInfo {
  serverInfo {
    version
    buildTime
    gitBranch
    gitCommit
    otpConfigVersion
    buildConfigVersion
    routerConfigVersion
    otpSerializationVersionIds
    internalTransitModelTimeZone
  }
}`

const tripQuery = `query trip(
  $from: Location!
  $to: Location!
  $arriveBy: Boolean
  $dateTime: DateTime
  $numTripPatterns: Int
  $modes: Modes
  $pageCursor: String
) {
  trip(
    from: $from
    to: $to
    arriveBy: $arriveBy
    dateTime: $dateTime
    numTripPatterns: $numTripPatterns
    modes: $modes
    pageCursor: $pageCursor
  ) {
    previousPageCursor
    nextPageCursor
    tripPatterns {
      aimedStartTime
      aimedEndTime
      expectedStartTime
      expectedEndTime
      duration
      distance
      legs {
        id
        mode
        aimedStartTime
        aimedEndTime
        expectedStartTime
        expectedEndTime
        realtime
        distance
        duration
        fromPlace {
          name
          quay {
            id
          }
        }
        toPlace {
          name
          quay {
            id
          }
        }
        line {
          id
          publicCode
          name
        }
        authority {
          id
          name
        }
        pointsOnLink {
          points
          length
        }
      }
    }
  }
}`
